package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/minigit/pkg/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			// Ensure the target directory exists.
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			existed := repo.Exists(abs)
			r, err := repo.Init(abs, repo.WithLogger(newLogger(cmd)))
			if err != nil {
				return err
			}

			verb := "Initialized empty"
			if existed {
				verb = "Reinitialized existing"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s repository in %s\n", verb, r.GitDir+string(filepath.Separator))
			return nil
		},
	}
}
