package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zender/internal/platform"
	"zender/internal/vrtmax"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var includeBody bool

	cmd := &cobra.Command{
		Use:   "resolve <episode-url>",
		Short: "Resolve an episode page to its manifest URL and DRM token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageURL := args[0]
			if p := platform.ForURL(pageURL); p != platform.VRTMax {
				return fmt.Errorf("unsupported platform %s for %s", p, pageURL)
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.platformClient()
			if err != nil {
				return err
			}
			provider, err := ctx.sessionProvider()
			if err != nil {
				return err
			}

			resolver := vrtmax.NewResolver(client, provider, logger)
			resolution, err := resolver.Resolve(cmd.Context(), pageURL, vrtmax.ResolveOptions{
				IncludeManifestBody: includeBody,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:    %s\n", resolution.Title)
			fmt.Fprintf(out, "Stream:   %s\n", resolution.StreamID)
			fmt.Fprintf(out, "Manifest: %s\n", resolution.ManifestURL)
			if resolution.DRMToken != "" {
				fmt.Fprintf(out, "DRM:      %s\n", resolution.DRMToken)
			} else {
				fmt.Fprintln(out, "DRM:      none")
			}
			if includeBody && resolution.ManifestBody != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, resolution.ManifestBody)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeBody, "include-body", false, "Fetch and print the manifest body")
	return cmd
}
