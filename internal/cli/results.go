package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/spf13/cobra"
)

type resultsAPI interface {
	resultsFetcher
	totalizerAPI
}

type resultsOptions struct {
	userID   api.ID
	rng      calendar.Range
	workdays *calendar.Workdays
	now      time.Time
}

func newResultsCmd() *cobra.Command {
	return GroupCommand{
		Use:   "results",
		Short: "List and register daily results",
		Subcommands: []*cobra.Command{
			newResultsListCmd(),
			newResultsRegisterCmd(),
			newResultsEditCmd(),
		},
	}.Build()
}

func newResultsListCmd() *cobra.Command {
	return LeafCommand{
		Use:   "list",
		Short: "List the days of a period and whether their result was registered",
		BoolFlags: []BoolFlag{
			{Name: "registered", Usage: "only show registered days"},
		},
		StrFlags: append([]StringFlag{
			{Name: "user", Usage: "user ID (default: TRACKER_USER_ID; every user when empty)"},
		}, periodFlags...),
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
			registered, _ := cmd.Flags().GetBool("registered")

			opts := resultsOptions{userID: env.userFlag(cmd), workdays: workdays, now: time.Now()}
			opts.rng, err = parsePeriod(readPeriodFlags(cmd), opts.now)
			if err != nil {
				return err
			}
			opts.rng.RegisteredOnly = registered

			if isTerminal(cmd.OutOrStdout()) && opts.userID != "" {
				return browseResults(cmd, client, NewPromptKit(), opts, true)
			}
			return runResultsList(cmd, client, opts)
		},
	}.Build()
}

// checkRange turns an unusable range into the current month. An inverted
// range is reported with its notice.
func checkRange(cmd *cobra.Command, in calendar.Range, now time.Time) calendar.Range {
	if in.Complete() && !in.Inverted() {
		return in
	}
	if in.Inverted() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Warning(calendar.MsgInvertedRange))
	}
	today := calendar.Today(now)
	rng := monthRange(today.Year, today.Month)
	rng.RegisteredOnly = in.RegisteredOnly
	return rng
}

// runResultsList prints the days of the period once.
func runResultsList(cmd *cobra.Command, client resultsFetcher, opts resultsOptions) error {
	rng := checkRange(cmd, opts.rng, opts.now)

	rows, err := client.Results(cmdContext(cmd), resultsQuery(opts.userID, rng))
	if err != nil {
		return err
	}
	days, err := buildResultDays(rows)
	if err != nil {
		return err
	}

	printResults(cmd.OutOrStdout(), rng, days, opts.workdays.Expected(*rng.Start, *rng.End), calendar.Today(opts.now))
	return nil
}

// pickResult shows the list and returns the day the user opened, or nil
// when they went back. The range the user navigated to is returned too.
func pickResult(cmd *cobra.Command, client resultsFetcher, kit PromptKit, opts resultsOptions, tui bool) (*resultSelection, calendar.Range, error) {
	rng := checkRange(cmd, opts.rng, opts.now)
	opts.rng = rng

	if tui {
		m := newResultsModel(cmdContext(cmd), client, opts)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
		final, err := p.Run()
		if err != nil {
			return nil, rng, err
		}
		fm := final.(resultsModel)
		return fm.selected, fm.rng, nil
	}

	rows, err := client.Results(cmdContext(cmd), resultsQuery(opts.userID, rng))
	if err != nil {
		return nil, rng, err
	}
	days, err := buildResultDays(rows)
	if err != nil {
		return nil, rng, err
	}
	expected := opts.workdays.Expected(*rng.Start, *rng.End)
	today := calendar.Today(opts.now)
	printResults(cmd.OutOrStdout(), rng, days, expected, today)

	options := make([]string, 0, len(days.entries)+1)
	for _, e := range days.entries {
		options = append(options, dayLine(e, days, expected, today))
	}
	options = append(options, "Back")

	idx, err := selectIn(kit, "Open a day", options)
	if err != nil {
		return nil, rng, err
	}
	if idx == len(days.entries) {
		return nil, rng, nil
	}
	e := days.entries[idx]
	return &resultSelection{day: e.Date, id: days.firstID(e.ID)}, rng, nil
}

// browseResults alternates between the list and the totalizer form until
// the user goes back. A failed save is shown and the list reopens.
func browseResults(cmd *cobra.Command, client resultsAPI, kit PromptKit, opts resultsOptions, tui bool) error {
	for {
		sel, rng, err := pickResult(cmd, client, kit, opts, tui)
		if err != nil {
			return err
		}
		if sel == nil {
			return nil
		}
		opts.rng = rng

		if err := runTotalizer(cmd, client, kit, opts.userID, sel.day, sel.id); err != nil {
			if ctxErr := cmdContext(cmd).Err(); ctxErr != nil {
				return ctxErr
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Error(err.Error()))
		}
	}
}
