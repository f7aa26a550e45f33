package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sniffgate/sniffgate/internal/adapters/outbound/tui"
	"github.com/sniffgate/sniffgate/internal/domain"
)

func newPreCommitCmd(path *string, verbose *bool) *cobra.Command {
	var (
		standard   string
		noRestage  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "precommit",
		Short: "Fix and verify the staged set, blocking the commit on errors",
		Long:  "Run the full pre-commit pipeline: auto-fix every staged PHP file, re-check the whole set, re-stage what changed, and exit non-zero while errors remain. Intended as a git pre-commit hook.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := newServices(cmd.Context(), *path, *verbose)
			if err != nil {
				return err
			}

			result, err := svcs.precommit.Run(cmd.Context(), *path, domain.PreCommitOptions{
				Standard: standard,
				Restage:  !noRestage,
			})
			if err != nil {
				return fmt.Errorf("pre-commit failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderPreCommitResult(result))
			}

			if !result.CanCommit {
				return fmt.Errorf("commit blocked: %s", result.FinalReport.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&standard, "standard", "", "Ruleset override (e.g. PSR12)")
	cmd.Flags().BoolVar(&noRestage, "no-restage", false, "Leave fixed files unstaged")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
