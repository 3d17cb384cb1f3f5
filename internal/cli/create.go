package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prepstack/packman/pkg/archive"
	"github.com/prepstack/packman/pkg/verify"
)

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	var (
		manifestPath string
		outputDir    string
		keyFile      string
	)

	cmd := &cobra.Command{
		Use:   "create DIR",
		Short: "Build and sign a pack archive",
		Long: `Build a distributable pack archive from a content directory. The checksum
and signature are computed and written into the output manifest, which is
distributed alongside the archive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], manifestPath, outputDir, keyFile)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest file (default: DIR/manifest.json)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory for the archive and manifest")
	cmd.Flags().StringVar(&keyFile, "key", "", "File containing the hex-encoded Ed25519 signing key (required)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func runCreate(cmd *cobra.Command, inputDir, manifestPath, outputDir, keyFile string) error {
	if manifestPath == "" {
		manifestPath = filepath.Join(inputDir, "manifest.json")
	}
	manifest, err := archive.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("cannot load manifest: %w", err)
	}

	rawKey, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("cannot read signing key: %w", err)
	}
	key, err := verify.ParsePrivateKey(strings.TrimSpace(string(rawKey)))
	if err != nil {
		return fmt.Errorf("invalid signing key: %w", err)
	}

	builder := archive.NewBuilder(manifest, inputDir, outputDir, key)
	archivePath, outManifestPath, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build pack: %w", err)
	}

	fmt.Printf("archive:  %s\n", archivePath)
	fmt.Printf("manifest: %s\n", outManifestPath)
	return nil
}
