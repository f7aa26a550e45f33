package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sniffgate/sniffgate/internal/adapters/outbound/tui"
	"github.com/sniffgate/sniffgate/internal/domain"
)

func newCheckCmd(path *string, verbose *bool) *cobra.Command {
	var (
		staged     bool
		standard   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check [target]",
		Short: "Check a file, directory, or the staged set against the ruleset",
		Long:  "Run phpcs over a file or directory target, or over the currently staged PHP files with --staged, and report every violation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !staged && len(args) == 0 {
				return fmt.Errorf("specify a target path or use --staged to check the staged set")
			}

			svcs, err := newServices(cmd.Context(), *path, *verbose)
			if err != nil {
				return err
			}

			var report *domain.BatchReport
			switch {
			case staged:
				report, err = svcs.check.CheckStaged(cmd.Context(), *path, standard)
			default:
				report, err = checkTarget(cmd, svcs, *path, args[0], standard)
			}
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatchReport(report))
			}

			if !report.CanCommit {
				return fmt.Errorf("%s", report.Summary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Check the currently staged files")
	cmd.Flags().StringVar(&standard, "standard", "", "Ruleset override (e.g. PSR12)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// checkTarget dispatches a positional target to the file or directory
// operation depending on what it points at.
func checkTarget(cmd *cobra.Command, svcs *services, dir, target, standard string) (*domain.BatchReport, error) {
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", target, err)
	}
	if info.IsDir() {
		return svcs.check.CheckDirectory(cmd.Context(), dir, target, standard)
	}
	return svcs.check.CheckFile(cmd.Context(), dir, target, standard)
}
