package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prepstack/packman/pkg/auth"
	"github.com/prepstack/packman/pkg/config"
	"github.com/prepstack/packman/pkg/download"
	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/model"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		archiveSource string
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "install PACK...",
		Short: "Install content packs",
		Long: `Install one or more content packs. Each argument is a pack manifest,
given as a local file path or an HTTP(S) URL, or a pack reference
(ID or ID@VERSION) resolved against the configured repositories in
priority order. The pack archive is fetched, verified against the
manifest's checksum and signature, validated and installed atomically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), args, archiveSource, force)
		},
	}

	cmd.Flags().StringVar(&archiveSource, "archive", "", "Archive file path or URL (default: derived from the manifest location)")
	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even if the same version is already installed")

	return cmd
}

func runInstall(ctx context.Context, packs []string, archiveSource string, force bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, downloader, err := loadPackManager(cfg)
	if err != nil {
		return err
	}

	for _, source := range packs {
		manifest, manifestURL, repo, err := loadManifestSource(ctx, cfg, source)
		if err != nil {
			return err
		}

		if !force && manager.IsInstalled(manifest.ID, manifest.Version) {
			fmt.Printf("%s %s is already installed\n", manifest.ID, manifest.Version)
			continue
		}

		if compat := manager.CheckCompatibility(manifest, cfg.Settings.AppVersion); !compat.Compatible {
			return fmt.Errorf("pack %s %s is not compatible: %s", manifest.ID, manifest.Version, compat.Reason)
		}

		// The archive lives next to the manifest, so a repository's
		// credentials cover it too.
		setRepositoryAuth(downloader, repo)

		archivePath, err := fetchArchive(ctx, manager, manifest, manifestURL, archiveSource, cfg.Settings.TempDir)
		if err != nil {
			return err
		}

		result := manager.Install(ctx, manifest, archivePath, printProgress)
		for _, warning := range result.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
		if !result.Success {
			return fmt.Errorf("failed to install %s: %s", manifest.ID, strings.Join(result.Errors, "; "))
		}
	}

	return nil
}

func setRepositoryAuth(downloader *download.ManagerImpl, repo *config.RepositoryConfig) {
	if repo != nil && repo.Token != "" {
		downloader.SetAuthenticator(auth.BearerAuth{Token: repo.Token})
		return
	}
	downloader.SetAuthenticator(nil)
}

// fetchArchive resolves the archive location and downloads it when remote.
// A local --archive path is copied into the temp area first: Install treats
// its archive argument as a temp artifact and removes it after success, and
// that must never delete the caller's own file.
func fetchArchive(ctx context.Context, manager installManager, manifest *model.Manifest, manifestURL *url.URL, archiveSource, tempDir string) (string, error) {
	if archiveSource != "" && !isRemote(archiveSource) {
		if _, err := os.Stat(archiveSource); err != nil {
			return "", fmt.Errorf("archive %s: %w", archiveSource, err)
		}
		if err := fsutil.EnsureDir(tempDir); err != nil {
			return "", fmt.Errorf("cannot create temp directory: %w", err)
		}
		staged := filepath.Join(tempDir, fmt.Sprintf("%s_%s.zip", manifest.ID, manifest.Version))
		if err := fsutil.Copy(archiveSource, staged); err != nil {
			return "", fmt.Errorf("cannot copy archive %s: %w", archiveSource, err)
		}
		return staged, nil
	}

	archiveURL, err := resolveArchiveURL(manifestURL, manifest, archiveSource)
	if err != nil {
		return "", err
	}
	return manager.Download(ctx, manifest, archiveURL, printProgress)
}

// installManager is the slice of the pack manager the install flow needs.
type installManager interface {
	Download(ctx context.Context, manifest *model.Manifest, source *url.URL, progress model.ProgressFunc) (string, error)
}

// loadManifestSource resolves one install argument to a manifest. URLs are
// fetched, existing files are read, anything else is treated as a pack
// reference and looked up in the configured repositories. The returned URL
// is nil for local files; the repository is nil unless the manifest came
// from one.
func loadManifestSource(ctx context.Context, cfg *config.Config, source string) (*model.Manifest, *url.URL, *config.RepositoryConfig, error) {
	if isRemote(source) {
		manifestURL, err := url.Parse(source)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid manifest URL %s: %w", source, err)
		}
		manifest, err := fetchManifest(ctx, manifestURL, "")
		if err != nil {
			return nil, nil, nil, err
		}
		return manifest, manifestURL, nil, nil
	}

	if _, err := os.Stat(source); err == nil {
		raw, err := os.ReadFile(source)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("cannot read manifest %s: %w", source, err)
		}
		manifest, err := decodeManifest(raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("manifest %s: %w", source, err)
		}
		return manifest, nil, nil, nil
	}

	return resolveFromRepositories(ctx, cfg, source)
}

func decodeManifest(raw []byte) (*model.Manifest, error) {
	var manifest model.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("not valid JSON: %w", err)
	}
	if manifest.ID == "" || manifest.Version == "" {
		return nil, fmt.Errorf("manifest is missing id or version")
	}
	return &manifest, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
