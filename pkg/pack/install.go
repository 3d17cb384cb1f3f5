package pack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prepstack/packman/internal/logger"
	"github.com/prepstack/packman/pkg/archive"
	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/hook"
	"github.com/prepstack/packman/pkg/model"
)

// Install verifies a downloaded archive against its manifest, validates the
// content inside it and swaps it into the packs directory. Any previously
// installed version is moved aside first and restored if a later step fails,
// so an interrupted install never leaves a half-written pack behind.
func (m *ManagerImpl) Install(ctx context.Context, manifest *model.Manifest, archivePath string, progress model.ProgressFunc) *model.InstallResult {
	result := &model.InstallResult{}
	if manifest != nil {
		result.PackID = manifest.ID
		result.Version = manifest.Version
	}
	if manifest == nil || manifest.ID == "" || manifest.Version == "" {
		return failInstall(result, progress, "manifest is missing or has no id/version")
	}

	emit(progress, manifest.ID, model.StatusVerifying, 0, 0)

	if compat := m.CheckCompatibility(manifest, m.appVersion); !compat.Compatible {
		return failInstall(result, progress, compat.Reason)
	}

	data, err := os.ReadFile(archivePath)
	if err != nil {
		return failInstall(result, progress, fmt.Sprintf("cannot read pack archive: %v", err))
	}

	integrity := m.verifier.PackIntegrity(data, manifest)
	result.Warnings = append(result.Warnings, integrity.Warnings...)
	if !integrity.IsValid {
		result.Errors = append(result.Errors, integrity.Errors...)
		emit(progress, manifest.ID, model.StatusError, 0, 0)
		return result
	}

	// Stage the new version next to the temp archive so the final move
	// into packsDir is a rename on the common same-filesystem case.
	staging, err := m.stage(ctx, manifest, archivePath)
	if err != nil {
		return failInstall(result, progress, fmt.Sprintf("cannot stage pack: %v", err))
	}
	defer os.RemoveAll(staging)

	if validation := m.validateStaged(manifest, staging); validation != nil {
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.String())
		}
		if !validation.IsValid {
			for _, e := range validation.Errors {
				result.Errors = append(result.Errors, e.String())
			}
			emit(progress, manifest.ID, model.StatusError, 0, 0)
			return result
		}
	}

	hooks := hook.NewManager()
	if err := hook.LoadFromPackDir(hooks, staging); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("cannot load pack hooks: %v", err))
	}
	hookCtx := hook.Context{PackID: manifest.ID, PackVersion: manifest.Version, PackPath: staging}
	if err := hooks.Execute(hook.PreInstall, hookCtx); err != nil {
		return failInstall(result, progress, fmt.Sprintf("pre-install hook rejected pack: %v", err))
	}

	emit(progress, manifest.ID, model.StatusInstalling, 0, 0)

	if err := m.swapIn(manifest, staging, result); err != nil {
		result.Errors = append(result.Errors, err.Error())
		emit(progress, manifest.ID, model.StatusError, 0, 0)
		return result
	}

	hookCtx.PackPath = m.installDir(manifest.ID)
	if err := hooks.Execute(hook.PostInstall, hookCtx); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("post-install hook failed: %v", err))
	}

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		logger.Warnf("cannot remove downloaded archive %s: %v", archivePath, err)
	}

	result.Success = true
	emit(progress, manifest.ID, model.StatusComplete, int64(len(data)), int64(len(data)))
	logger.Info("pack installed", logger.Fields{"pack": manifest.ID, "version": manifest.Version})
	return result
}

// stage extracts the archive into a fresh directory under tempDir and writes
// the manifest into it, producing the exact tree that will be moved into place.
func (m *ManagerImpl) stage(ctx context.Context, manifest *model.Manifest, archivePath string) (string, error) {
	if err := fsutil.EnsureDir(m.tempDir); err != nil {
		return "", err
	}
	staging, err := os.MkdirTemp(m.tempDir, manifest.ID+".staging-")
	if err != nil {
		return "", err
	}
	if err := archive.ExtractTo(ctx, archivePath, staging); err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	if err := os.WriteFile(filepath.Join(staging, manifestFileName), raw, fsutil.FileModeDefault); err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	return staging, nil
}

// validateStaged decodes the content files named by the manifest from the
// staged tree and runs structural validation over all of them.
func (m *ManagerImpl) validateStaged(manifest *model.Manifest, staging string) *model.ValidationResult {
	var (
		questions []model.Question
		templates []model.ExamTemplate
		tips      []model.Tip
	)
	result := model.NewValidationResult()
	decodeStagedFile(result, staging, manifest.Files.Questions, &questions)
	decodeStagedFile(result, staging, manifest.Files.ExamTemplates, &templates)
	decodeStagedFile(result, staging, manifest.Files.Tips, &tips)
	for _, media := range manifest.Files.Media {
		mediaPath, err := archive.SecurePath(staging, media)
		if err != nil {
			result.AddError(model.Issue{File: media, Message: "declared media path escapes the pack directory"})
			continue
		}
		if _, err := os.Stat(mediaPath); err != nil {
			result.AddError(model.Issue{File: media, Message: "declared media file is missing from the archive"})
		}
	}
	if !result.IsValid {
		return result
	}
	result.Merge(m.validator.ValidateEntirePack(manifest, questions, templates, tips))
	return result
}

func decodeStagedFile(result *model.ValidationResult, staging, name string, v any) {
	// Content paths come from the manifest, which the signature only binds to
	// the archive checksum, so they must not reach outside the staged tree.
	contentPath, err := archive.SecurePath(staging, name)
	if err != nil {
		result.AddError(model.Issue{File: name, Message: "declared content path escapes the pack directory"})
		return
	}
	raw, err := os.ReadFile(contentPath)
	if err != nil {
		result.AddError(model.Issue{File: name, Message: fmt.Sprintf("declared content file is missing from the archive: %v", err)})
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		result.AddError(model.Issue{File: name, Message: fmt.Sprintf("content file is not valid JSON: %v", err)})
	}
}

// swapIn moves the staged tree into the packs directory, keeping the old
// version as a backup until the new one is fully recorded. rollback errors
// are appended to the result so the caller can see the residual state.
func (m *ManagerImpl) swapIn(manifest *model.Manifest, staging string, result *model.InstallResult) error {
	if err := fsutil.EnsureDir(m.packsDir); err != nil {
		return fmt.Errorf("cannot create packs directory: %w", err)
	}

	packDir := m.installDir(manifest.ID)
	backupDir := ""
	if _, err := os.Stat(packDir); err == nil {
		backupDir = packDir + backupSeparator + fmt.Sprintf("%d", time.Now().UnixMilli())
		if err := os.Rename(packDir, backupDir); err != nil {
			return fmt.Errorf("cannot set aside installed version: %w", err)
		}
	}

	rollback := func(cause error) error {
		if err := os.RemoveAll(packDir); err != nil {
			logger.Errorf("rollback: cannot remove partial install %s: %v", packDir, err)
		}
		if backupDir != "" {
			if err := os.Rename(backupDir, packDir); err != nil {
				// The previous version is stranded under its backup name.
				// Report it rather than guessing at further repairs.
				logger.Errorf("rollback: cannot restore %s from %s: %v", packDir, backupDir, err)
				result.Errors = append(result.Errors, fmt.Sprintf("rollback incomplete: previous version left at %s", backupDir))
			}
		}
		return cause
	}

	if err := fsutil.Move(staging, packDir); err != nil {
		return rollback(fmt.Errorf("cannot move pack into place: %w", err))
	}

	record := model.PackRecord{
		Version:     manifest.Version,
		InstallTime: time.Now().UnixMilli(),
		Checksum:    manifest.Checksum,
		Signature:   manifest.Signature,
		Verified:    true,
	}
	if err := m.records.Put(manifest.ID, record); err != nil {
		return rollback(fmt.Errorf("cannot record install: %w", err))
	}

	if backupDir != "" {
		if err := os.RemoveAll(backupDir); err != nil {
			logger.Warnf("cannot remove backup %s: %v", backupDir, err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("old version left at %s", backupDir))
		}
	}
	return nil
}

func failInstall(result *model.InstallResult, progress model.ProgressFunc, msg string) *model.InstallResult {
	result.Errors = append(result.Errors, msg)
	emit(progress, result.PackID, model.StatusError, 0, 0)
	return result
}

func emit(progress model.ProgressFunc, packID string, status model.ProgressStatus, downloaded, total int64) {
	if progress == nil {
		return
	}
	p := model.Progress{PackID: packID, Status: status, Downloaded: downloaded, Total: total}
	if total > 0 {
		p.Percentage = float64(downloaded) / float64(total) * 100
	}
	progress(p)
}
