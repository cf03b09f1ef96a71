package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/stringutil"
	"github.com/spf13/cobra"
)

type loginAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.User, error)
}

func newLoginCmd() *cobra.Command {
	return LeafCommand{
		Use:   "login",
		Short: "Check a CPF and password against the API",
		StrFlags: []StringFlag{
			{Name: "cpf", Usage: "CPF, with or without punctuation (prompted if omitted)"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			client, err := env.client()
			if err != nil {
				return err
			}

			cpfFlag, _ := cmd.Flags().GetString("cpf")

			user, err := runLogin(cmd, client, NewPromptKit(), cpfFlag)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Silent(fmt.Sprintf("use --user %s or TRACKER_USER_ID=%s with the other commands", user.ID, user.ID)))
			return nil
		},
	}.Build()
}

// cmdContext returns the command context, or a background context for
// commands that were not started through Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runLogin(cmd *cobra.Command, client loginAPI, kit PromptKit, cpf string) (*api.User, error) {
	var err error
	if cpf == "" {
		cpf, err = kit.Prompt("CPF")
		if err != nil {
			return nil, err
		}
	}
	cpf = stringutil.Digits(cpf)
	if cpf == "" {
		return nil, fmt.Errorf("cpf is required")
	}

	password, err := kit.Password("Password")
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := client.Login(cmdContext(cmd), api.Credentials{CPF: cpf, Password: password})
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("logged in as %s (%s)", Primary(user.Name), role)))
	return user, nil
}
