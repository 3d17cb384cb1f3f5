package pack

import (
	"context"
	"os"

	"github.com/prepstack/packman/internal/logger"
	"github.com/prepstack/packman/pkg/hook"
)

// Uninstall removes a pack's directory and install record. Returns true when
// the pack is gone afterwards, including the case where it was never
// installed. Pre-remove hook failures are logged but do not block removal;
// a pack must always be removable.
func (m *ManagerImpl) Uninstall(ctx context.Context, packID string) bool {
	packDir := m.installDir(packID)

	installedVersion, installed := m.InstalledVersion(packID)
	if installed {
		hooks := hook.NewManager()
		if err := hook.LoadFromPackDir(hooks, packDir); err != nil {
			logger.Debugf("cannot load hooks for %s: %v", packID, err)
		}
		hookCtx := hook.Context{PackID: packID, PackVersion: installedVersion, PackPath: packDir}
		if err := hooks.Execute(hook.PreRemove, hookCtx); err != nil {
			logger.Warnf("pre-remove hook for %s failed: %v", packID, err)
		}
		defer func() {
			if err := hooks.Execute(hook.PostRemove, hookCtx); err != nil {
				logger.Warnf("post-remove hook for %s failed: %v", packID, err)
			}
		}()
	}

	if err := os.RemoveAll(packDir); err != nil {
		logger.Errorf("cannot remove pack directory %s: %v", packDir, err)
		return false
	}

	if err := m.records.Remove(packID); err != nil {
		logger.Errorf("cannot remove install record for %s: %v", packID, err)
		return false
	}

	if installed {
		logger.Info("pack removed", logger.Fields{"pack": packID, "version": installedVersion})
	}
	return true
}
