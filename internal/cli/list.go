package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed content packs",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList()
		},
	}

	return cmd
}

func runList() error {
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
		return fmt.Errorf("failed to read installed packs: %w", err)
	}

	if len(usage.Packs) == 0 {
		fmt.Println("no packs installed")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PACK\tVERSION\tSIZE")
	for _, p := range usage.Packs {
		version := p.Version
		if version == "" {
			version = "unknown"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, version, formatBytes(p.Size))
	}
	return w.Flush()
}
