// Package verify is the integrity gate between bytes received from the
// network and bytes allowed to become an active pack directory. It computes
// and checks the pack archive checksum and validates the Ed25519 manifest
// signature against the configured trust anchors. No install path may bypass
// it.
package verify

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/prepstack/packman/pkg/model"
)

// ChecksumResult reports the outcome of a checksum comparison.
type ChecksumResult struct {
	IsValid      bool
	ComputedHash string
}

// IntegrityResult reports the outcome of a full integrity verification.
// IsValid is true only when both the checksum and the signature check pass;
// there is no partial trust.
type IntegrityResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Verifier checks pack archives against their manifests. The trusted public
// keys are pinned at construction; a signature is accepted when any of them
// verifies it, which allows key rotation.
type Verifier struct {
	trustedKeys []ed25519.PublicKey
}

// NewVerifier creates a Verifier trusting the given public keys.
func NewVerifier(trustedKeys ...ed25519.PublicKey) *Verifier {
	return &Verifier{trustedKeys: trustedKeys}
}

// Checksum computes SHA-256 over the exact archive bytes and compares it,
// case-insensitively, to the expected hex digest.
func (v *Verifier) Checksum(data []byte, expectedHex string) ChecksumResult {
	sum := sha256.Sum256(data)
	computed := hex.EncodeToString(sum[:])
	return ChecksumResult{
		IsValid:      computed == strings.ToLower(strings.TrimSpace(expectedHex)),
		ComputedHash: computed,
	}
}

// Signature verifies the manifest's Ed25519 signature over its canonical
// identity payload. It returns nil when any trusted key verifies the
// signature.
func (v *Verifier) Signature(manifest *model.Manifest) error {
	if len(v.trustedKeys) == 0 {
		return fmt.Errorf("no trusted public keys configured")
	}
	sig, err := base64.StdEncoding.DecodeString(manifest.Signature)
	if err != nil {
		return fmt.Errorf("signature is not valid base64: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("signature has wrong length: expected %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}

	payload := manifest.SignaturePayload()
	for _, key := range v.trustedKeys {
		if ed25519.Verify(key, payload, sig) {
			return nil
		}
	}
	return fmt.Errorf("signature does not verify against any trusted key")
}

// PackIntegrity requires both a checksum match over the archive bytes and a
// valid signature over the manifest identity. Either failure yields an
// unconditionally invalid result.
func (v *Verifier) PackIntegrity(data []byte, manifest *model.Manifest) IntegrityResult {
	result := IntegrityResult{IsValid: true}

	checksum := v.Checksum(data, manifest.Checksum)
	if !checksum.IsValid {
		result.IsValid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("checksum mismatch: manifest declares %s, archive hashes to %s", manifest.Checksum, checksum.ComputedHash))
	}

	if err := v.Signature(manifest); err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("signature verification failed: %v", err))
	}

	return result
}
