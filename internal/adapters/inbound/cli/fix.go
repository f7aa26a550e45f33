package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sniffgate/sniffgate/internal/adapters/outbound/tui"
)

func newFixCmd(path *string, verbose *bool) *cobra.Command {
	var (
		standard   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Auto-fix a single file in place",
		Long:  "Run phpcbf on one file, then re-check it and report what was fixed and which violations remain.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := newServices(cmd.Context(), *path, *verbose)
			if err != nil {
				return err
			}

			result, err := svcs.fix.FixFile(cmd.Context(), *path, args[0], standard)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&standard, "standard", "", "Ruleset override (e.g. PSR12)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
