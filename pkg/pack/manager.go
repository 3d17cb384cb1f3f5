package pack

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/prepstack/packman/internal/logger"
	"github.com/prepstack/packman/pkg/archive"
	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/model"
	"github.com/prepstack/packman/pkg/store"
)

// ManagerImpl implements Manager on top of a local pack directory, a
// download manager and a persistent install record store.
type ManagerImpl struct {
	verifier   Verifier
	validator  Validator
	downloader Downloader
	records    store.RecordStore
	packsDir   string
	tempDir    string
	appVersion string
}

func NewManager(verifier Verifier, validator Validator, downloader Downloader, records store.RecordStore, packsDir, tempDir, appVersion string) *ManagerImpl {
	return &ManagerImpl{
		verifier:   verifier,
		validator:  validator,
		downloader: downloader,
		records:    records,
		packsDir:   packsDir,
		tempDir:    tempDir,
		appVersion: appVersion,
	}
}

func (m *ManagerImpl) Download(ctx context.Context, manifest *model.Manifest, source *url.URL, progress model.ProgressFunc) (string, error) {
	if manifest == nil || manifest.ID == "" {
		return "", errors.Wrap(errors.ErrManifestInvalid, "download requires a manifest with a pack ID")
	}
	if compat := m.CheckCompatibility(manifest, m.appVersion); !compat.Compatible {
		return "", errors.Wrapf(errors.ErrIncompatiblePack, "refusing to download %s %s: %s", manifest.ID, manifest.Version, compat.Reason)
	}
	return m.downloader.Fetch(ctx, manifest.ID, source, progress)
}

func (m *ManagerImpl) CancelDownload(packID string) bool {
	return m.downloader.Cancel(packID)
}

func (m *ManagerImpl) IsInstalled(packID, packVersion string) bool {
	installed, ok := m.InstalledVersion(packID)
	if !ok {
		return false
	}
	return packVersion == "" || packVersion == installed
}

// InstalledVersion reads the version from the installed pack's manifest.
// The record store is consulted as a fallback when the manifest on disk
// is unreadable.
func (m *ManagerImpl) InstalledVersion(packID string) (string, bool) {
	if _, err := os.Stat(m.installDir(packID)); err != nil {
		return "", false
	}
	manifestPath := filepath.Join(m.installDir(packID), manifestFileName)
	manifest, err := archive.LoadManifest(manifestPath)
	if err == nil {
		return manifest.Version, true
	}
	logger.Debugf("unreadable manifest for %s: %v", packID, err)
	record, ok, recErr := m.records.Get(packID)
	if recErr != nil || !ok {
		return "", false
	}
	return record.Version, true
}

func (m *ManagerImpl) installDir(packID string) string {
	return filepath.Join(m.packsDir, packID)
}
