package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var (
		path    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "sniffgate",
		Short:         "Gate commits on PHP_CodeSniffer",
		Long:          "Sniffgate runs phpcs/phpcbf over your staged PHP files, auto-fixes what it can, re-stages the result, and blocks the commit while errors remain.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&path, "path", ".", "Working directory")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd(&path, &verbose))
	cmd.AddCommand(newFixCmd(&path, &verbose))
	cmd.AddCommand(newPreCommitCmd(&path, &verbose))
	cmd.AddCommand(newMCPCmd(&path))

	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
