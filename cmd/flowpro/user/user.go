package user

import (
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/flowpro/flowpro/cmd"
	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/spf13/cobra"
)

// Command returns the user subcommand.
var Command = &cobra.Command{
	Use:                "user",
	Aliases:            []string{"users"},
	Short:              "Manage users",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var name, password string
	userCreateCommand := &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.CreateUser(ctx, args[0], proto.UserOptions{
				DisplayName: name,
				Password:    password,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created user %d <%s>\n", u.ID(), u.Email())
			return nil
		},
	}

	userCreateCommand.Flags().StringVarP(&name, "name", "n", "", "the user's display name")
	userCreateCommand.Flags().StringVarP(&password, "password", "p", "", "the user's password")

	userListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			users, err := be.Users(ctx)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				cmd.Println("No users found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				users,
				[]string{"ID", "Email", "Name", "Created At"},
				func(u proto.User) ([]string, error) {
					name := u.DisplayName()
					if name == "" {
						name = "-"
					}
					return []string{
						strconv.FormatInt(u.ID(), 10),
						u.Email(),
						name,
						humanize.Time(u.CreatedAt()),
					}, nil
				},
			)
		},
	}

	userInfoCommand := &cobra.Command{
		Use:   "info EMAIL",
		Short: "Show information about a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			d, err := be.Dashboard(ctx, u)
			if err != nil {
				return err
			}

			cmd.Printf("ID: %d\n", u.ID())
			cmd.Printf("Email: %s\n", u.Email())
			cmd.Printf("Display name: %s\n", u.DisplayName())
			cmd.Printf("Signed up: %s\n", u.CreatedAt().Format("2006-01-02 15:04:05"))
			cmd.Printf("Projects: %d\n", d.Projects)
			cmd.Printf("Active tasks: %d\n", d.ActiveTasks)
			cmd.Printf("Completed tasks: %d\n", d.CompletedTasks)
			cmd.Printf("Teams: %d\n", d.Teams)
			return nil
		},
	}

	userSetPasswordCommand := &cobra.Command{
		Use:   "set-password EMAIL PASSWORD",
		Short: "Change a user's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			return be.SetPassword(ctx, u.ID(), args[1])
		},
	}

	Command.AddCommand(
		userCreateCommand,
		userInfoCommand,
		userListCommand,
		userSetPasswordCommand,
	)
}
