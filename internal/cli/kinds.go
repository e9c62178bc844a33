package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tagforest/internal/logging"
	"github.com/yaklabco/tagforest/pkg/markup"
)

const formatJSON = "json"

// kindInfo represents a diagnostic kind in JSON output.
type kindInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func newKindsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List diagnostic kinds",
		Long: `List every diagnostic kind the parser can report, with its description
and default severity. Kinds can be disabled or re-rated under
"diagnostics:" in the configuration file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := markup.Kinds()

			if format == formatJSON {
				infos := make([]kindInfo, 0, len(kinds))
				for _, kind := range kinds {
					infos = append(infos, kindInfo{
						Kind:        string(kind),
						Description: kind.Description(),
						Severity:    string(markup.DefaultSeverity(kind)),
					})
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding kinds: %w", err)
				}
				return nil
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			for _, kind := range kinds {
				logger.Info(string(kind),
					logging.FieldSeverity, markup.DefaultSeverity(kind),
					logging.FieldDescription, kind.Description(),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
