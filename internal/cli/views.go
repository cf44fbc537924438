package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/timezone-buddy/internal/view"
	"github.com/aanand-mishra/timezone-buddy/internal/zone"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list [search]",
		Aliases: []string{"ls"},
		Short:   "Show every buddy with their local time",
		Long:    "Show every buddy with their local time. With a search term, only buddies whose name or handle contains it are shown.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			now := a.now()
			rows := view.ListRows(list, now, a.cfg.Uses24h())
			return view.RenderSearch(cmd.OutOrStdout(), rows, query, now, a.cfg.Uses24h())
		},
	}
}

func newMenuBarCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "menubar",
		Short: "Show the compact buddy summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			if watch {
				return view.RunLive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), svc.List, a.now, a.cfg.Uses24h())
			}

			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return view.RenderMenuBar(cmd.OutOrStdout(), view.BuildMenuBar(list, a.now(), a.cfg.Uses24h()))
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep the summary on screen and refresh it every minute")
	return cmd
}

func newZonesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "zones [filter]",
		Short: "List the timezones a buddy can be in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := zone.Supported(a.fs, a.cfg.ZoneInfoDir)
			if err != nil {
				return err
			}

			var filter string
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}

			out := cmd.OutOrStdout()
			for _, n := range names {
				if filter != "" && !strings.Contains(strings.ToLower(n), filter) {
					continue
				}
				fmt.Fprintf(out, "%-32s %s\n", n, zone.DisplayName(n))
			}
			return nil
		},
	}
}
