package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/relativity/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// version works without a readable config
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "relativity v%s\n", version.Module)
			fmt.Fprintf(out, "  Engine:     %s\n", version.Engine)
			fmt.Fprintf(out, "  Formatter:  %s\n", version.Formatter)
			fmt.Fprintf(out, "  API:        %s\n", version.API)
			fmt.Fprintf(out, "  CLI:        %s\n", version.CLI)
			fmt.Fprintf(out, "  Git Commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
