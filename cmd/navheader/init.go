package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navheader/internal/config"
	"github.com/vango-dev/navheader/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example config",
		Long: `Write an example navheader config describing a small menu.

The format follows the file extension, or --format when no file is given.

Examples:
  navheader init
  navheader init --format=yaml
  navheader init site/navheader.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "navheader." + format
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("E500").
					WithDetailf("%s already exists", path).
					WithSuggestion("Use --force to overwrite it")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.New("E500").Wrap(err)
			}

			if err := config.Example().SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Created %s", path)
			info(cmd.OutOrStdout(), "Run 'navheader serve -c %s' to try it", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Config format when no file is given: json or yaml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
