package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"zender/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect persisted catalog snapshots",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List series from the most recent scrape run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, run, series, err := latestSnapshot(ctx, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			rows := make([][]string, 0, len(series))
			for i := range series {
				rows = append(rows, []string{
					series[i].Title,
					strconv.Itoa(len(series[i].Seasons)),
					strconv.Itoa(series[i].EpisodeCount()),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (%s, %d series)\n", run.ID, run.Platform, len(series))
			fmt.Fprintln(out, renderTable(out,
				[]string{"Series", "Seasons", "Episodes"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <series-title>",
		Short: "Show seasons and episodes for one series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, series, err := latestSnapshot(ctx, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			for i := range series {
				if series[i].Title != args[0] {
					continue
				}

				rows := make([][]string, 0, series[i].EpisodeCount())
				for _, season := range series[i].Seasons {
					for _, episode := range season.Episodes {
						rows = append(rows, []string{
							season.Title,
							strconv.Itoa(episode.Number),
							episode.Title,
							episode.PageURL,
						})
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out,
					[]string{"Season", "#", "Episode", "URL"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			}
			return fmt.Errorf("series %q not found in the latest run", args[0])
		},
	}
}

func latestSnapshot(ctx *commandContext, cmd *cobra.Command) (*catalog.Store, catalog.Run, []catalog.Series, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, catalog.Run{}, nil, err
	}

	store, err := catalog.Open(cfg.CatalogDBPath())
	if err != nil {
		return nil, catalog.Run{}, nil, fmt.Errorf("open catalog: %w", err)
	}

	run, err := store.LatestRun(cmd.Context())
	if err != nil {
		store.Close()
		if errors.Is(err, catalog.ErrNoRuns) {
			return nil, catalog.Run{}, nil, errors.New("no catalog snapshots recorded; run \"zender scrape\" first")
		}
		return nil, catalog.Run{}, nil, err
	}

	series, err := store.SeriesForRun(cmd.Context(), run.ID)
	if err != nil {
		store.Close()
		return nil, catalog.Run{}, nil, err
	}
	return store, run, series, nil
}
