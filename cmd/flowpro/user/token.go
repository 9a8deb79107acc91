package user

import (
	"fmt"
	"time"

	"github.com/caarlos0/duration"
	"github.com/dustin/go-humanize"
	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/spf13/cobra"
)

func init() {
	var expiresIn string
	// cmd is a command that issues an access token for a user.
	cmd := &cobra.Command{
		Use:   "token EMAIL",
		Short: "Issue an access token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			var (
				token     string
				expiresAt time.Time
			)
			if expiresIn != "" {
				d, err := duration.Parse(expiresIn)
				if err != nil {
					return err
				}
				token, expiresAt, err = be.IssueTokenFor(ctx, u, d)
				if err != nil {
					return err
				}
			} else {
				token, expiresAt, err = be.IssueToken(ctx, u)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), token) //nolint:errcheck
			cmd.PrintErrf("Access token created (expires %s)\n", humanize.Time(expiresAt))
			return nil
		},
	}

	cmd.Flags().StringVar(&expiresIn, "expires-in", "", "Token expiration time (e.g. 1y, 3mo, 2w, 5d4h, 1h30m)")

	Command.AddCommand(cmd)
}
