package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Establish or refresh the authenticated platform session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.sessionProvider()
			if err != nil {
				return err
			}

			session, identityToken, err := provider.Authenticate(cmd.Context())
			if err != nil {
				return fmt.Errorf("authenticate: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session established for %s (%d cookies persisted)\n", session.Platform, len(session.Cookies))
			if identityToken != "" {
				fmt.Fprintln(out, "Identity token present")
			}
			return nil
		},
	}
}
