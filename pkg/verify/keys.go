package verify

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/model"
)

// ParsePublicKey decodes a hex-encoded Ed25519 public key.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidPublicKey, err.Error())
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidPublicKey, "expected %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// ParsePublicKeys decodes a list of hex-encoded Ed25519 public keys, as
// configured under trusted_keys.
func ParsePublicKeys(hexKeys []string) ([]ed25519.PublicKey, error) {
	keys := make([]ed25519.PublicKey, 0, len(hexKeys))
	for i, hk := range hexKeys {
		key, err := ParsePublicKey(hk)
		if err != nil {
			return nil, errors.Wrapf(err, "trusted key %d", i)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ParsePrivateKey decodes a hex-encoded Ed25519 private key (seed form or
// full 64-byte form).
func ParsePrivateKey(hexKey string) (ed25519.PrivateKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidPrivateKey, err.Error())
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	}
	return nil, errors.Wrapf(errors.ErrInvalidPrivateKey, "expected %d or %d bytes, got %d", ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
}

// GenerateKeyPair creates a new Ed25519 key pair and returns both halves
// hex-encoded, ready for config files and signing tools.
func GenerateKeyPair() (publicHex, privateHex string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate key pair: %w", err)
	}
	return hex.EncodeToString(pub), hex.EncodeToString(priv), nil
}

// SignManifest signs the manifest's canonical identity payload and returns
// the base64 signature for embedding in the manifest. The manifest checksum
// must already be final when this is called.
func SignManifest(manifest *model.Manifest, key ed25519.PrivateKey) string {
	sig := ed25519.Sign(key, manifest.SignaturePayload())
	return base64.StdEncoding.EncodeToString(sig)
}
