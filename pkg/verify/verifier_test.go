package verify

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepstack/packman/pkg/model"
)

func testKeyPair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	publicHex, privateHex, err := GenerateKeyPair()
	require.NoError(t, err)
	pub, err := ParsePublicKey(publicHex)
	require.NoError(t, err)
	priv, err := ParsePrivateKey(privateHex)
	require.NoError(t, err)
	return pub, priv
}

func signedManifest(t *testing.T, data []byte, key ed25519.PrivateKey) *model.Manifest {
	t.Helper()
	sum := sha256.Sum256(data)
	manifest := &model.Manifest{
		ID:       "biology-101",
		Version:  "1.2.0",
		Checksum: hex.EncodeToString(sum[:]),
	}
	manifest.Signature = SignManifest(manifest, key)
	return manifest
}

func TestChecksum(t *testing.T) {
	data := []byte("pack archive bytes")
	sum := sha256.Sum256(data)
	expected := hex.EncodeToString(sum[:])

	v := NewVerifier()

	tests := []struct {
		name     string
		declared string
		want     bool
	}{
		{name: "exact match", declared: expected, want: true},
		{name: "uppercase digest matches", declared: strings.ToUpper(expected), want: true},
		{name: "surrounding whitespace ignored", declared: " " + expected + "\n", want: true},
		{name: "different digest", declared: strings.Repeat("0", 64), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Checksum(data, tt.declared)
			assert.Equal(t, tt.want, result.IsValid)
			assert.Equal(t, expected, result.ComputedHash)
		})
	}
}

func TestSignature_Valid(t *testing.T) {
	pub, priv := testKeyPair(t)
	manifest := signedManifest(t, []byte("archive"), priv)

	v := NewVerifier(pub)
	assert.NoError(t, v.Signature(manifest))
}

func TestSignature_KeyRotation(t *testing.T) {
	oldPub, _ := testKeyPair(t)
	newPub, newPriv := testKeyPair(t)
	manifest := signedManifest(t, []byte("archive"), newPriv)

	// Any trusted key may verify; order does not matter.
	v := NewVerifier(oldPub, newPub)
	assert.NoError(t, v.Signature(manifest))
}

func TestSignature_Failures(t *testing.T) {
	pub, priv := testKeyPair(t)
	_, otherPriv := testKeyPair(t)

	tests := []struct {
		name     string
		manifest func(t *testing.T) *model.Manifest
		keys     []ed25519.PublicKey
		wantMsg  string
	}{
		{
			name: "no trusted keys",
			manifest: func(t *testing.T) *model.Manifest {
				return signedManifest(t, []byte("archive"), priv)
			},
			keys:    nil,
			wantMsg: "no trusted public keys",
		},
		{
			name: "signed by untrusted key",
			manifest: func(t *testing.T) *model.Manifest {
				return signedManifest(t, []byte("archive"), otherPriv)
			},
			keys:    []ed25519.PublicKey{pub},
			wantMsg: "does not verify",
		},
		{
			name: "payload tampered after signing",
			manifest: func(t *testing.T) *model.Manifest {
				m := signedManifest(t, []byte("archive"), priv)
				m.Version = "9.9.9"
				return m
			},
			keys:    []ed25519.PublicKey{pub},
			wantMsg: "does not verify",
		},
		{
			name: "signature not base64",
			manifest: func(t *testing.T) *model.Manifest {
				m := signedManifest(t, []byte("archive"), priv)
				m.Signature = "!!not base64!!"
				return m
			},
			keys:    []ed25519.PublicKey{pub},
			wantMsg: "not valid base64",
		},
		{
			name: "signature wrong length",
			manifest: func(t *testing.T) *model.Manifest {
				m := signedManifest(t, []byte("archive"), priv)
				m.Signature = "c2hvcnQ="
				return m
			},
			keys:    []ed25519.PublicKey{pub},
			wantMsg: "wrong length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(tt.keys...)
			err := v.Signature(tt.manifest(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPackIntegrity(t *testing.T) {
	pub, priv := testKeyPair(t)
	data := []byte("pack archive bytes")

	t.Run("valid pack", func(t *testing.T) {
		manifest := signedManifest(t, data, priv)
		result := NewVerifier(pub).PackIntegrity(data, manifest)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("checksum mismatch fails even with valid signature", func(t *testing.T) {
		manifest := signedManifest(t, data, priv)
		result := NewVerifier(pub).PackIntegrity([]byte("different bytes"), manifest)
		require.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "checksum mismatch")
	})

	t.Run("bad signature fails even with matching checksum", func(t *testing.T) {
		_, otherPriv := testKeyPair(t)
		manifest := signedManifest(t, data, otherPriv)
		result := NewVerifier(pub).PackIntegrity(data, manifest)
		require.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "signature verification failed")
	})

	t.Run("both checks fail independently", func(t *testing.T) {
		_, otherPriv := testKeyPair(t)
		manifest := signedManifest(t, data, otherPriv)
		result := NewVerifier(pub).PackIntegrity([]byte("different bytes"), manifest)
		require.False(t, result.IsValid)
		assert.Len(t, result.Errors, 2)
	})
}

func TestParseKeys(t *testing.T) {
	publicHex, privateHex, err := GenerateKeyPair()
	require.NoError(t, err)

	t.Run("seed form private key signs identically", func(t *testing.T) {
		full, err := ParsePrivateKey(privateHex)
		require.NoError(t, err)
		seed, err := ParsePrivateKey(hex.EncodeToString(full.Seed()))
		require.NoError(t, err)
		assert.Equal(t, full, seed)
	})

	t.Run("public key round trip", func(t *testing.T) {
		pub, err := ParsePublicKey(publicHex)
		require.NoError(t, err)
		assert.Equal(t, publicHex, hex.EncodeToString(pub))
	})

	t.Run("rejects bad inputs", func(t *testing.T) {
		_, err := ParsePublicKey("zz")
		assert.Error(t, err)
		_, err = ParsePublicKey("abcd")
		assert.Error(t, err)
		_, err = ParsePrivateKey("abcd")
		assert.Error(t, err)
	})

	t.Run("parses trusted key list", func(t *testing.T) {
		keys, err := ParsePublicKeys([]string{publicHex})
		require.NoError(t, err)
		assert.Len(t, keys, 1)

		_, err = ParsePublicKeys([]string{publicHex, "broken"})
		assert.Error(t, err)
	})
}
