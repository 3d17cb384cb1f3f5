// Package errors defines the shared sentinel errors used across packman
// and small helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")

	// Pack errors.
	ErrPackNotFound     = fmt.Errorf("pack not found")
	ErrPackInvalid      = fmt.Errorf("pack is invalid")
	ErrManifestInvalid  = fmt.Errorf("pack manifest is invalid")
	ErrChecksumMismatch = fmt.Errorf("pack checksum mismatch")
	ErrSignatureInvalid = fmt.Errorf("pack signature is invalid")
	ErrIncompatiblePack = fmt.Errorf("pack is incompatible with this app version")
	ErrPackNotInstalled = fmt.Errorf("pack is not installed")
	ErrInstallAborted   = fmt.Errorf("pack installation aborted")
	ErrRollbackFailed   = fmt.Errorf("failed to restore previous pack version")

	// Download errors.
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrDownloadTimeout  = fmt.Errorf("download timed out")
	ErrDownloadCanceled = fmt.Errorf("download canceled")

	// Filesystem errors.
	ErrInvalidPath      = fmt.Errorf("invalid path")
	ErrFileNotFound     = fmt.Errorf("file not found")
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")

	// Store errors.
	ErrStoreCorrupt = fmt.Errorf("pack record store is corrupt")

	// Hook errors.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")

	// Key errors.
	ErrInvalidPublicKey  = fmt.Errorf("invalid public key")
	ErrInvalidPrivateKey = fmt.Errorf("invalid private key")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
