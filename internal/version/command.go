package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand attaches a `version` subcommand to root and
// enables the --version flag with the same output.
func AttachCobraVersionCommand(root *cobra.Command) {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long:  "Print the version, commit hash, build timestamp and Go runtime. Build values are injected with -ldflags from the Git tag and repository state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := Full()
			if short {
				out = Short()
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	root.Version = Full()
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(cmd)
}
