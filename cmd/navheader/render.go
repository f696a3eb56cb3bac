package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/navheader/internal/errors"
	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/navheader"
	"github.com/vango-dev/navheader/pkg/render"
	"github.com/vango-dev/navheader/pkg/vdom"
)

func renderCmd(opts *options) *cobra.Command {
	var (
		pretty bool
		open   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the header HTML",
		Long: `Render the configured header to HTML on stdout.

Examples:
  navheader render --pretty
  navheader render --open=Parent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)
			resolver, err := newResolver(cfg, logger)
			if err != nil {
				return err
			}

			history := nav.NewHistory("/")
			history.SetLogger(logger.With("component", "nav"))
			header, err := headerFactory(cfg, resolver, logger)(cmd.Context(), history)
			if err != nil {
				return err
			}
			if open != "" {
				if err := openSubMenu(header, open); err != nil {
					return err
				}
			}

			html, err := render.NewRenderer(render.RendererConfig{Pretty: pretty}).RenderToString(header.Render())
			if err != nil {
				return errors.New("E500").Wrap(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringVar(&open, "open", "", "Render with the submenu of this entry open")

	return cmd
}

// openSubMenu clicks the first disclosure label titled title. Leaves and
// submenu items with the same title are skipped.
func openSubMenu(header *navheader.Header, title string) error {
	for _, node := range vdom.FindByText(header.Render(), title) {
		if node.AttrString("aria-haspopup") == "" {
			continue
		}
		if handler, ok := node.Handler("click"); ok && vdom.Invoke(handler, nil) {
			return nil
		}
	}
	return errors.New("E500").
		WithDetailf("no entry with a submenu is titled %q", title).
		WithSuggestion("Check menuItems in the config")
}
