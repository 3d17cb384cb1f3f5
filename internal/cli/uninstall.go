package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall PACK_ID...",
		Short: "Remove installed content packs",
		Long: `Remove one or more installed content packs and their install records.
Removing a pack that is not installed is not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, _, err := loadPackManager(cfg)
			if err != nil {
				return err
			}

			failed := 0
			for _, packID := range args {
				if manager.Uninstall(cmd.Context(), packID) {
					fmt.Printf("removed %s\n", packID)
				} else {
					fmt.Printf("failed to remove %s\n", packID)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("failed to remove %d pack(s)", failed)
			}
			return nil
		},
	}

	return cmd
}
