// Package model provides the data structures shared across packman: pack
// manifests, content items, validation reports and installation results.
package model

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// ManifestFiles lists the relative paths of the content files inside a pack.
type ManifestFiles struct {
	Questions     string   `json:"questions"`
	ExamTemplates string   `json:"examTemplates"`
	Tips          string   `json:"tips"`
	Media         []string `json:"media,omitempty"`
}

// ManifestMetadata carries declared counts and topic/language lists for a pack.
// The counts are advisory; mismatches against the actual content are reported
// as validation warnings, not errors.
type ManifestMetadata struct {
	TotalQuestions     int      `json:"totalQuestions,omitempty"`
	TotalTips          int      `json:"totalTips,omitempty"`
	TotalTemplates     int      `json:"totalTemplates,omitempty"`
	Topics             []string `json:"topics,omitempty"`
	SupportedLanguages []string `json:"supportedLanguages,omitempty"`
}

// Manifest describes a content pack: identity, integrity hash, authenticity
// signature and the app-version compatibility window.
type Manifest struct {
	ID            string           `json:"id"`
	Version       string           `json:"version"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Author        string           `json:"author"`
	MinAppVersion string           `json:"minAppVersion"`
	MaxAppVersion string           `json:"maxAppVersion,omitempty"`
	Checksum      string           `json:"checksum"`
	Signature     string           `json:"signature"`
	CreatedAt     int64            `json:"createdAt"`
	Files         ManifestFiles    `json:"files"`
	Metadata      ManifestMetadata `json:"metadata"`
}

// GetVersion returns the parsed pack version, or nil if it cannot be parsed.
func (m *Manifest) GetVersion() *version.Version {
	v, err := version.NewVersion(m.Version)
	if err != nil {
		return nil
	}
	return v
}

// SignaturePayload returns the canonical bytes the pack signature covers.
// Binding the signature to id, version and checksum means a valid signature
// vouches for the exact archive bytes named by the checksum.
func (m *Manifest) SignaturePayload() []byte {
	return []byte(fmt.Sprintf("%s\n%s\n%s", m.ID, m.Version, m.Checksum))
}
