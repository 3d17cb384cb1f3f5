package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCleanupCmd creates the cleanup command.
func NewCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove stale temp files",
		Long: `Remove partial downloads and staging directories older than a day
from the temp area. Files belonging to in-flight operations are young
enough to be left alone.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, _, err := loadPackManager(cfg)
			if err != nil {
				return err
			}

			reclaimed := manager.CleanupTempFiles()
			fmt.Printf("reclaimed %s\n", formatBytes(reclaimed))
			return nil
		},
	}

	return cmd
}
