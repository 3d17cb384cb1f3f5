package model

import "fmt"

// Issue is a single structured finding produced by validation: the file it was
// found in, an optional line, the field path and a human-readable message.
type Issue struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the issue for logs and CLI output.
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d %s: %s", i.File, i.Line, i.Field, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", i.File, i.Field, i.Message)
}

// ValidationResult is the report produced by the validator. It is never
// mutated after the validator returns it.
type ValidationResult struct {
	IsValid  bool    `json:"isValid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// AddError records an error and marks the result invalid.
func (r *ValidationResult) AddError(issue Issue) {
	r.Errors = append(r.Errors, issue)
	r.IsValid = false
}

// AddWarning records a warning. Warnings never affect validity.
func (r *ValidationResult) AddWarning(issue Issue) {
	r.Warnings = append(r.Warnings, issue)
}

// Merge folds another result into this one. The merged result is valid only
// if both inputs were valid.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.IsValid = r.IsValid && other.IsValid
}

// InstallResult is the terminal outcome of a pack install attempt.
type InstallResult struct {
	Success  bool     `json:"success"`
	PackID   string   `json:"packId"`
	Version  string   `json:"version"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// PackUsage describes the on-disk footprint of one installed pack.
type PackUsage struct {
	ID      string `json:"id"`
	Size    int64  `json:"size"`
	Version string `json:"version"`
}

// StorageUsage aggregates the disk usage of all installed packs and the
// download temp directory.
type StorageUsage struct {
	TotalSize int64       `json:"totalSize"`
	PacksSize int64       `json:"packsSize"`
	TempSize  int64       `json:"tempSize"`
	Packs     []PackUsage `json:"packs"`
}

// PackRecord is the secure metadata record written alongside a successful
// install, keyed by pack id. It is a second source of truth that must stay
// consistent with the pack's manifest.json on disk.
type PackRecord struct {
	Version     string `json:"version"`
	InstallTime int64  `json:"installTime"`
	Checksum    string `json:"checksum"`
	Signature   string `json:"signature"`
	Verified    bool   `json:"verified"`
}
