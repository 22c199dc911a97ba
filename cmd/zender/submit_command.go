package main

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"zender/internal/naming"
	"zender/internal/platform"
	"zender/internal/queueclient"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var qualityMatcher string
	var outputFilename string

	cmd := &cobra.Command{
		Use:   "submit <episode-url>",
		Short: "Submit an episode URL to the download queue service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageURL := args[0]
			if platform.ForURL(pageURL) == platform.Unknown {
				return fmt.Errorf("unrecognized platform for %s", pageURL)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			filename := strings.TrimSpace(outputFilename)
			if filename == "" {
				filename = defaultFilename(pageURL)
			}

			client, err := queueclient.New(cfg.Queue, queueclient.WithLogger(logger))
			if err != nil {
				return err
			}

			err = client.Submit(cmd.Context(), queueclient.Request{
				URL:                     pageURL,
				PreferredQualityMatcher: qualityMatcher,
				OutputFilename:          filename,
			})
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, queueclient.ErrDuplicate):
				fmt.Fprintf(out, "Already queued: %s\n", pageURL)
				return nil
			case err != nil:
				return err
			}

			if filename != "" {
				fmt.Fprintf(out, "Queued %s as %s\n", pageURL, filename)
			} else {
				fmt.Fprintf(out, "Queued %s\n", pageURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&qualityMatcher, "quality", "q", "", "Preferred quality matcher forwarded to the queue")
	cmd.Flags().StringVarP(&outputFilename, "filename", "f", "", "Output filename (derived from the episode slug when empty)")
	return cmd
}

// defaultFilename derives a release-style name from the final path segment of
// a VRT MAX episode URL. Other platforms keep an empty name and let the queue
// service pick one.
func defaultFilename(pageURL string) string {
	if platform.ForURL(pageURL) != platform.VRTMax {
		return ""
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	slug := path.Base(strings.TrimRight(parsed.Path, "/"))
	if slug == "" || slug == "." || slug == "/" {
		return ""
	}
	return naming.FromSlug(slug)
}
