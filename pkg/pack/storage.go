package pack

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prepstack/packman/internal/logger"
	"github.com/prepstack/packman/pkg/archive"
	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/model"
)

// StorageUsage walks the packs and temp directories and reports their sizes.
// Backup directories left by an interrupted install count toward the packs
// total but are not listed as packs.
func (m *ManagerImpl) StorageUsage() (*model.StorageUsage, error) {
	usage := &model.StorageUsage{Packs: []model.PackUsage{}}

	packsSize, err := fsutil.DirSize(m.packsDir)
	if err != nil {
		return nil, err
	}
	usage.PacksSize = packsSize

	entries, err := os.ReadDir(m.packsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.Contains(entry.Name(), backupSeparator) {
			continue
		}
		packDir := filepath.Join(m.packsDir, entry.Name())
		size, err := fsutil.DirSize(packDir)
		if err != nil {
			logger.Warnf("cannot size pack directory %s: %v", packDir, err)
			continue
		}
		pu := model.PackUsage{ID: entry.Name(), Size: size}
		if manifest, err := archive.LoadManifest(filepath.Join(packDir, manifestFileName)); err == nil {
			pu.Version = manifest.Version
		}
		usage.Packs = append(usage.Packs, pu)
	}
	sort.Slice(usage.Packs, func(i, j int) bool { return usage.Packs[i].ID < usage.Packs[j].ID })

	tempSize, err := fsutil.DirSize(m.tempDir)
	if err != nil {
		return nil, err
	}
	usage.TempSize = tempSize
	usage.TotalSize = usage.PacksSize + usage.TempSize
	return usage, nil
}

// CleanupTempFiles removes temp entries older than tempFileMaxAge, including
// partial downloads and abandoned staging directories. Failures are logged
// and skipped so one stuck file cannot block the rest of the sweep.
func (m *ManagerImpl) CleanupTempFiles() int64 {
	entries, err := os.ReadDir(m.tempDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("cannot read temp directory %s: %v", m.tempDir, err)
		}
		return 0
	}

	cutoff := time.Now().Add(-tempFileMaxAge)
	var reclaimed int64
	for _, entry := range entries {
		path := filepath.Join(m.tempDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		size := info.Size()
		if entry.IsDir() {
			if size, err = fsutil.DirSize(path); err != nil {
				size = 0
			}
		}
		if err := os.RemoveAll(path); err != nil {
			logger.Warnf("cannot remove stale temp entry %s: %v", path, err)
			continue
		}
		reclaimed += size
		logger.Debugf("removed stale temp entry %s", path)
	}
	return reclaimed
}
