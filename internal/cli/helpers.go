package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prepstack/packman/internal/logger"
	"github.com/prepstack/packman/pkg/auth"
	"github.com/prepstack/packman/pkg/config"
	"github.com/prepstack/packman/pkg/download"
	"github.com/prepstack/packman/pkg/model"
	"github.com/prepstack/packman/pkg/pack"
	"github.com/prepstack/packman/pkg/store"
	"github.com/prepstack/packman/pkg/validation"
	"github.com/prepstack/packman/pkg/verify"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
)

func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		logLevel = "debug"
	}
	logger.InitLogger(logLevel)

	return cfg, nil
}

func loadPackManager(cfg *config.Config) (*pack.ManagerImpl, *download.ManagerImpl, error) {
	keys, err := verify.ParsePublicKeys(cfg.Settings.TrustedKeys)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse trusted keys: %w", err)
	}

	records, err := store.NewFileStore(cfg.Settings.StateFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open install records: %w", err)
	}

	dl := download.NewManager(cfg.Settings.TempDir, cfg.Settings.HTTPTimeout, "")

	manager := pack.NewManager(
		verify.NewVerifier(keys...),
		validation.NewValidator(),
		dl,
		records,
		cfg.Settings.PacksDir,
		cfg.Settings.TempDir,
		cfg.Settings.AppVersion,
	)
	return manager, dl, nil
}

// resolveFromRepositories fetches a pack manifest from the first enabled
// repository that serves it, in priority order. A bare pack id selects
// <id>.manifest.json, the repository's pointer to the latest version;
// id@version selects the exact <id>_<version>.manifest.json the pack
// builder publishes.
func resolveFromRepositories(ctx context.Context, cfg *config.Config, ref string) (*model.Manifest, *url.URL, *config.RepositoryConfig, error) {
	repos := cfg.EnabledRepositories()
	if len(repos) == 0 {
		return nil, nil, nil, fmt.Errorf("pack %s: not a manifest file, and no repositories are configured", ref)
	}

	name := ref + ".manifest.json"
	if id, packVersion, ok := strings.Cut(ref, "@"); ok {
		name = fmt.Sprintf("%s_%s.manifest.json", id, packVersion)
	}

	for _, repo := range repos {
		base, err := url.Parse(repo.URL)
		if err != nil {
			continue
		}
		manifestURL := base.JoinPath(name)
		manifest, err := fetchManifest(ctx, manifestURL, repo.Token)
		if err != nil {
			logger.Debugf("repository %s has no %s: %v", repo.Name, name, err)
			continue
		}
		return manifest, manifestURL, repo, nil
	}
	return nil, nil, nil, fmt.Errorf("pack %s not found in any enabled repository", ref)
}

// fetchManifest downloads and decodes a pack manifest. A non-empty token is
// sent as a bearer credential.
func fetchManifest(ctx context.Context, manifestURL *url.URL, token string) (*model.Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL.String(), nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		if err := (auth.BearerAuth{Token: token}).Apply(req); err != nil {
			return nil, err
		}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch manifest %s: %w", manifestURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch manifest %s: unexpected status %s", manifestURL, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	manifest, err := decodeManifest(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", manifestURL, err)
	}
	return manifest, nil
}

// resolveArchiveURL derives the archive URL for a manifest. An explicit
// source wins; a manifest fetched from a repository falls back to the
// <id>_<version>.zip convention next to the manifest file.
func resolveArchiveURL(manifestURL *url.URL, manifest *model.Manifest, override string) (*url.URL, error) {
	if override != "" {
		parsed, err := url.Parse(override)
		if err != nil {
			return nil, fmt.Errorf("invalid archive URL %q: %w", override, err)
		}
		return parsed, nil
	}
	if manifestURL == nil {
		return nil, fmt.Errorf("no archive source for pack %s; pass --archive", manifest.ID)
	}
	derived := *manifestURL
	base := derived.Path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[:idx+1]
	} else {
		base = ""
	}
	derived.Path = base + fmt.Sprintf("%s_%s.zip", manifest.ID, manifest.Version)
	return &derived, nil
}

func printProgress(p model.Progress) {
	switch p.Status {
	case model.StatusDownloading:
		if p.Total > 0 {
			fmt.Printf("\rdownloading %s: %.1f%%", p.PackID, p.Percentage)
		}
	case model.StatusVerifying:
		fmt.Printf("\nverifying %s\n", p.PackID)
	case model.StatusInstalling:
		fmt.Printf("installing %s\n", p.PackID)
	case model.StatusComplete:
		fmt.Printf("installed %s\n", p.PackID)
	case model.StatusError:
		fmt.Printf("failed %s\n", p.PackID)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
