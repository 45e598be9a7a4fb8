package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dariusokafor/wsmove/internal/constants"
	"github.com/dariusokafor/wsmove/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     constants.ToolName,
		Short:   "wsmove - move files between workspace projects, keeping every import working",
		Long:    `wsmove moves one or more files between projects in a monorepo, rewriting every relative and alias import that points at them and keeping each project's barrel file in sync.`,
		Version: version.Version,
	}

	rootCmd.AddCommand(moveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("%s version %s\n", constants.ToolName, version.GetVersion())
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
