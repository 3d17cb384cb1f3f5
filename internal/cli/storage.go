package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStorageCmd creates the storage command.
func NewStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Show disk usage of packs and temp files",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, _, err := loadPackManager(cfg)
			if err != nil {
				return err
			}

			usage, err := manager.StorageUsage()
			if err != nil {
				return fmt.Errorf("failed to compute storage usage: %w", err)
			}

			fmt.Printf("packs: %s (%d installed)\n", formatBytes(usage.PacksSize), len(usage.Packs))
			fmt.Printf("temp:  %s\n", formatBytes(usage.TempSize))
			fmt.Printf("total: %s\n", formatBytes(usage.TotalSize))
			return nil
		},
	}

	return cmd
}
