package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prepstack/packman/pkg/archive"
	"github.com/prepstack/packman/pkg/model"
	"github.com/prepstack/packman/pkg/validation"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate DIR",
		Short: "Validate pack content before publishing",
		Long: `Validate the content files of a pack directory against the pack schema.
The manifest defaults to manifest.json inside the directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], manifestPath)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest file (default: DIR/manifest.json)")

	return cmd
}

func runValidate(dir, manifestPath string) error {
	if manifestPath == "" {
		manifestPath = filepath.Join(dir, "manifest.json")
	}
	manifest, err := archive.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("cannot load manifest: %w", err)
	}

	var (
		questions []model.Question
		templates []model.ExamTemplate
		tips      []model.Tip
	)
	if err := decodeContentFile(dir, manifest.Files.Questions, &questions); err != nil {
		return err
	}
	if err := decodeContentFile(dir, manifest.Files.ExamTemplates, &templates); err != nil {
		return err
	}
	if err := decodeContentFile(dir, manifest.Files.Tips, &tips); err != nil {
		return err
	}

	validator := validation.NewValidator()
	result := validator.ValidateEntirePack(manifest, questions, templates, tips)

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning.String())
	}
	for _, issue := range result.Errors {
		fmt.Printf("error: %s\n", issue.String())
	}
	if !result.IsValid {
		return fmt.Errorf("pack %s has %d validation error(s)", manifest.ID, len(result.Errors))
	}

	fmt.Printf("pack %s %s is valid (%d questions, %d templates, %d tips)\n",
		manifest.ID, manifest.Version, len(questions), len(templates), len(tips))
	return nil
}

func decodeContentFile(dir, name string, v any) error {
	path := filepath.Join(dir, filepath.FromSlash(name))
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read content file %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("content file %s is not valid JSON: %w", name, err)
	}
	return nil
}
