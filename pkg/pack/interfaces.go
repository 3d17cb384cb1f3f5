package pack

import (
	"context"
	"net/url"

	"github.com/prepstack/packman/pkg/model"
	"github.com/prepstack/packman/pkg/verify"
)

//go:generate mockgen -destination=./mocks/pack.go -package=mocks -source=interfaces.go

// Manager drives the content pack lifecycle: download, verification,
// installation, removal and storage accounting.
type Manager interface {
	// Download fetches the pack archive for the given manifest into the
	// temp area and returns the local path of the downloaded file.
	Download(ctx context.Context, manifest *model.Manifest, source *url.URL, progress model.ProgressFunc) (string, error)
	// CancelDownload aborts an in-flight download for the given pack.
	CancelDownload(packID string) bool
	// CheckCompatibility reports whether a pack's declared app version
	// bounds admit the running application version.
	CheckCompatibility(manifest *model.Manifest, appVersion string) Compatibility
	// Install verifies, validates and installs a downloaded pack archive.
	// The previously installed version, if any, is restored on failure.
	Install(ctx context.Context, manifest *model.Manifest, archivePath string, progress model.ProgressFunc) *model.InstallResult
	// Uninstall removes an installed pack and its record. Removing a pack
	// that is not installed is a no-op and reports success.
	Uninstall(ctx context.Context, packID string) bool
	// IsInstalled reports whether a pack is installed. A non-empty version
	// restricts the check to that exact version.
	IsInstalled(packID, packVersion string) bool
	// InstalledVersion returns the installed version of a pack.
	InstalledVersion(packID string) (string, bool)
	// StorageUsage reports disk usage of installed packs and temp files.
	StorageUsage() (*model.StorageUsage, error)
	// CleanupTempFiles removes stale files from the temp area and returns
	// the number of bytes reclaimed.
	CleanupTempFiles() int64
}

// Verifier checks archive integrity against a manifest.
type Verifier interface {
	PackIntegrity(archive []byte, manifest *model.Manifest) verify.IntegrityResult
}

// Validator checks the structural correctness of pack content.
type Validator interface {
	ValidateEntirePack(manifest *model.Manifest, questions []model.Question, templates []model.ExamTemplate, tips []model.Tip) *model.ValidationResult
}

// Downloader fetches pack archives over HTTP.
type Downloader interface {
	Fetch(ctx context.Context, packID string, source *url.URL, progress model.ProgressFunc) (string, error)
	Cancel(packID string) bool
}
