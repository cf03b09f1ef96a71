package cli

import (
	"context"
	"fmt"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/spf13/cobra"
)

type servicesAPI interface {
	Services(ctx context.Context) ([]api.Service, error)
}

type usersAPI interface {
	Users(ctx context.Context) ([]api.User, error)
}

func newServicesCmd() *cobra.Command {
	return GroupCommand{
		Use:   "services",
		Short: "Inspect the services a result records",
		Subcommands: []*cobra.Command{
			LeafCommand{
				Use:   "list",
				Short: "List services",
				RunE: func(cmd *cobra.Command, args []string) error {
					env, err := loadEnv(cmd)
					if err != nil {
						return err
					}
					client, err := env.client()
					if err != nil {
						return err
					}
					return runServicesList(cmd, client)
				},
			}.Build(),
		},
	}.Build()
}

func newUsersCmd() *cobra.Command {
	return GroupCommand{
		Use:   "users",
		Short: "Inspect user accounts",
		Subcommands: []*cobra.Command{
			LeafCommand{
				Use:   "list",
				Short: "List users",
				RunE: func(cmd *cobra.Command, args []string) error {
					env, err := loadEnv(cmd)
					if err != nil {
						return err
					}
					client, err := env.client()
					if err != nil {
						return err
					}
					return runUsersList(cmd, client)
				},
			}.Build(),
		},
	}.Build()
}

func runServicesList(cmd *cobra.Command, client servicesAPI) error {
	services, err := client.Services(cmdContext(cmd))
	if err != nil {
		return err
	}
	if len(services) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Info("no services"))
		return nil
	}
	for _, s := range services {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", Silent(fmt.Sprintf("%4s", s.ID)), Text(s.Name))
	}
	return nil
}

func runUsersList(cmd *cobra.Command, client usersAPI) error {
	users, err := client.Users(cmdContext(cmd))
	if err != nil {
		return err
	}
	if len(users) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Info("no users"))
		return nil
	}
	for _, u := range users {
		name := Text(u.Name)
		if u.IsAdmin {
			name += " " + Primary("(admin)")
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", Silent(fmt.Sprintf("%4s", u.ID)), name)
	}
	return nil
}
