package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/config"
	"github.com/dariusokafor/wsmove/internal/tree"
	"github.com/dariusokafor/wsmove/service"
)

var (
	moveProject            string
	moveProjectDirectory   string
	moveDeriveProjectDir   bool
	moveSkipExport         bool
	moveSkipFormat         bool
	moveAllowUnicode       bool
	moveRemoveEmptyProject bool
	moveConfigPath         string
	moveOutputFormat       string
)

func moveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <patterns...>",
		Short: "Move one or more files into a target project",
		Long: `Move moves files matched by the given literal paths or globs into --project,
rewriting every relative and alias import in the workspace that points at them,
and adding or removing barrel re-exports as needed.

Examples:
  wsmove move libs/a/src/lib/util.ts --project b
  wsmove move "libs/a/src/lib/*.ts" --project b --derive-project-directory
  wsmove move libs/a/src/lib/util.ts --project b --project-directory shared`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMove,
	}

	cmd.Flags().StringVar(&moveProject, "project", "", "Target project name (required)")
	cmd.Flags().StringVar(&moveProjectDirectory, "project-directory", "", `Subpath under the target project's source root (default "lib")`)
	cmd.Flags().BoolVar(&moveDeriveProjectDir, "derive-project-directory", false, "Mirror each source's own subpath into the target project instead of using --project-directory")
	cmd.Flags().BoolVar(&moveSkipExport, "skip-export", false, "Do not add a barrel export on the target side of a cross-project move")
	cmd.Flags().BoolVar(&moveSkipFormat, "skip-format", false, "Accepted for interface parity; formatting is out of scope")
	cmd.Flags().BoolVar(&moveAllowUnicode, "allow-unicode", false, "Permit Unicode basenames in move targets")
	cmd.Flags().BoolVar(&moveRemoveEmptyProject, "remove-empty-project", false, "Delete a source project's root directory once its last source file has moved out")
	cmd.Flags().StringVar(&moveConfigPath, "config", "", "Path to the workspace manifest")
	cmd.Flags().StringVar(&moveOutputFormat, "format", "text", "Report format: text, json, or yaml")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(moveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load workspace manifest: %w", err)
	}

	loader := service.NewConfigurationLoader()
	req := domain.MoveRequest{
		Patterns:               args,
		Project:                moveProject,
		ProjectDirectory:       moveProjectDirectory,
		DeriveProjectDirectory: moveDeriveProjectDir,
		SkipExport:             moveSkipExport,
		SkipFormat:             moveSkipFormat,
		AllowUnicode:           moveAllowUnicode,
		RemoveEmptyProject:     moveRemoveEmptyProject,
	}
	req = loader.MergeRequest(req, cfg, cmd.Flags().Changed("allow-unicode"), cmd.Flags().Changed("remove-empty-project"))

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}
	overlay := tree.NewWithBacking(tree.NewDiskBacking(wd))

	pm := service.NewProgressManager(true)
	defer pm.Close()

	svc := service.NewMoveServiceWithProgress(overlay, cfg, pm)

	result, err := svc.Move(context.Background(), req)
	if err != nil {
		return err
	}

	if err := overlay.Flush(wd); err != nil {
		return fmt.Errorf("failed to write changes to disk: %w", err)
	}

	return service.WriteReport(os.Stdout, service.BuildReport(result), moveOutputFormat)
}

// exitCodeFor maps a MoveError's kind to a process exit code; any
// other error (config loading, I/O) exits 1.
func exitCodeFor(err error) int {
	moveErr, ok := err.(*domain.MoveError)
	if !ok {
		return 1
	}
	switch moveErr.Kind {
	case domain.InvalidPath, domain.SourceNotFound, domain.ProjectNotFound, domain.TargetCollision, domain.NoMatch:
		return 2
	case domain.Internal:
		return 3
	default:
		return 1
	}
}

