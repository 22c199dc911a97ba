package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"zender/internal/catalog"
	"zender/internal/platform"
	"zender/internal/vrtmax"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Traverse the full series catalog and persist a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.platformClient()
			if err != nil {
				return err
			}

			scraper := vrtmax.NewScraper(client, cfg.VRTMax.SeriesListID, logger)

			startedAt := time.Now()
			series, err := scraper.AllSeries(cmd.Context())
			if err != nil {
				return fmt.Errorf("traverse catalog: %w", err)
			}

			store, err := catalog.Open(cfg.CatalogDBPath())
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			runID, err := store.SaveRun(cmd.Context(), platform.VRTMax.String(), startedAt, series)
			if err != nil {
				return fmt.Errorf("persist snapshot: %w", err)
			}

			seasons := 0
			episodes := 0
			for i := range series {
				seasons += len(series[i].Seasons)
				episodes += series[i].EpisodeCount()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Run", "Series", "Seasons", "Episodes", "Duration"},
				[][]string{{
					runID,
					strconv.Itoa(len(series)),
					strconv.Itoa(seasons),
					strconv.Itoa(episodes),
					time.Since(startedAt).Round(time.Second).String(),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
