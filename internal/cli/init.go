package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tagforest/internal/logging"
	"github.com/yaklabco/tagforest/pkg/config"
	"github.com/yaklabco/tagforest/pkg/markup"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the project config file name written by init.
const defaultConfigFile = ".tagforest.yml"

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new tagforest configuration file",
		Long: `Create a .tagforest.yml configuration file in the current directory.
The template lists every diagnostic kind with its default severity.

Examples:
  tagforest init                     Create .tagforest.yml
  tagforest init --output site.yml   Write to a custom file path
  tagforest init --force             Overwrite an existing file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	kinds := markup.Kinds()
	infos := make([]config.KindInfo, 0, len(kinds))
	for _, kind := range kinds {
		infos = append(infos, config.KindInfo{
			Kind:        string(kind),
			Description: kind.Description(),
			Severity:    config.Severity(markup.DefaultSeverity(kind)),
		})
	}

	if err := os.WriteFile(absPath, config.GenerateTemplate(infos), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'tagforest kinds' to see all diagnostic kinds")

	return nil
}
