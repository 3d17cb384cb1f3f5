package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/verify"
)

// NewKeygenCmd creates the keygen command.
func NewKeygenCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "keygen NAME",
		Short: "Generate an Ed25519 signing key pair",
		Long: `Generate a new Ed25519 key pair for signing packs. The private key is
written to NAME.key with owner-only permissions; the public key, suitable
for the trusted_keys config list, is written to NAME.pub and printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runKeygen(args[0], outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write the key files to")

	return cmd
}

func runKeygen(name, outputDir string) error {
	publicHex, privateHex, err := verify.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	if err := fsutil.EnsureDir(outputDir); err != nil {
		return err
	}

	privatePath := filepath.Join(outputDir, name+".key")
	if err := os.WriteFile(privatePath, []byte(privateHex+"\n"), 0o600); err != nil {
		return fmt.Errorf("cannot write private key: %w", err)
	}
	publicPath := filepath.Join(outputDir, name+".pub")
	if err := os.WriteFile(publicPath, []byte(publicHex+"\n"), fsutil.FileModeDefault); err != nil {
		return fmt.Errorf("cannot write public key: %w", err)
	}

	fmt.Printf("private key: %s\n", privatePath)
	fmt.Printf("public key:  %s\n", publicPath)
	fmt.Printf("trusted_keys entry: %s\n", publicHex)
	return nil
}
