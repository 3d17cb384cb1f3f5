package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestJSONKeepsMetadata(t *testing.T) {
	raw, err := json.Marshal(&Manifest{ID: "biology-101", Version: "1.2.0"})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "metadata")
	assert.Contains(t, decoded, "files")
}

func TestSignaturePayload(t *testing.T) {
	m := &Manifest{ID: "biology-101", Version: "1.2.0", Checksum: "abc123"}
	assert.Equal(t, []byte("biology-101\n1.2.0\nabc123"), m.SignaturePayload())

	// Payloads of distinct packs never collide.
	other := &Manifest{ID: "biology-101", Version: "1.3.0", Checksum: "abc123"}
	assert.NotEqual(t, m.SignaturePayload(), other.SignaturePayload())
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, "1.2.0", (&Manifest{Version: "1.2.0"}).GetVersion().String())
	assert.Nil(t, (&Manifest{Version: "not-a-version"}).GetVersion())
}
