package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/spf13/cobra"
)

const maxLoginAttempts = 3

type appAPI interface {
	loginAPI
	resultsAPI
	reportAPI
}

type appOptions struct {
	workdays *calendar.Workdays
	now      time.Time
	width    int
	tui      bool
}

const (
	menuResults = "Results"
	menuReport  = "Target report"
	menuLogout  = "Log out"
	menuQuit    = "Quit"
)

func newAppCmd() *cobra.Command {
	return LeafCommand{
		Use:   "app",
		Short: "Start an interactive session",
		Long: `Logs in and opens a menu with the results of the current month and, for
administrators, the target report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			client, err := env.client()
			if err != nil {
				return err
			}
			workdays, err := calendar.ParseWorkdays(env.cfg.Workdays)
			if err != nil {
				return fmt.Errorf("invalid workdays: %w", err)
			}

			opts := appOptions{
				workdays: workdays,
				now:      time.Now(),
				width:    terminalWidth(cmd.OutOrStdout()),
				tui:      isTerminal(cmd.OutOrStdout()),
			}
			return runApp(cmd, client, NewPromptKit(), opts)
		},
	}.Build()
}

// runApp logs in and shows the menu until the user quits.
func runApp(cmd *cobra.Command, client appAPI, kit PromptKit, opts appOptions) error {
	user, err := appLogin(cmd, client, kit)
	if err != nil {
		return err
	}

	for {
		options := []string{menuResults}
		if user.IsAdmin {
			options = append(options, menuReport)
		}
		options = append(options, menuLogout, menuQuit)

		idx, err := selectIn(kit, fmt.Sprintf("%s, what next?", user.Name), options)
		if err != nil {
			return err
		}

		switch options[idx] {
		case menuResults:
			err = browseResults(cmd, client, kit, appResultsOptions(user, opts), opts.tui)
		case menuReport:
			today := calendar.Today(opts.now)
			err = runReport(cmd, client, kit, reportOptions{
				rng:   monthRange(today.Year, today.Month),
				width: opts.width,
				now:   opts.now,
			})
		case menuLogout:
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Info("logged out"))
			user, err = appLogin(cmd, client, kit)
			if err != nil {
				return err
			}
		case menuQuit:
			return nil
		}

		if err != nil {
			if ctxErr := cmdContext(cmd).Err(); ctxErr != nil {
				return ctxErr
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Error(err.Error()))
		}
	}
}

func appResultsOptions(user *api.User, opts appOptions) resultsOptions {
	today := calendar.Today(opts.now)
	return resultsOptions{
		userID:   user.ID,
		rng:      monthRange(today.Year, today.Month),
		workdays: opts.workdays,
		now:      opts.now,
	}
}

// appLogin asks for credentials until they are accepted. Errors other than
// rejected credentials end the session.
func appLogin(cmd *cobra.Command, client loginAPI, kit PromptKit) (*api.User, error) {
	var err error
	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		var user *api.User
		user, err = runLogin(cmd, client, kit, "")
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, api.ErrInvalidCredentials) {
			return nil, err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Error(err.Error()))
	}
	return nil, err
}
