package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/natasilva/task-tracker-front/internal/totalizer"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type totalizerAPI interface {
	Services(ctx context.Context) ([]api.Service, error)
	Result(ctx context.Context, id api.ID) (*api.ResultDetail, error)
	CreateResult(ctx context.Context, r api.NewResult) error
	UpdateResult(ctx context.Context, id api.ID, items []api.ItemInput) error
}

func newResultsRegisterCmd() *cobra.Command {
	return LeafCommand{
		Use:   "register DATE",
		Short: "Register the service quantities of a day",
		Args:  cobra.ExactArgs(1),
		StrFlags: []StringFlag{
			{Name: "user", Usage: "user ID (default: TRACKER_USER_ID)"},
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

			userID := env.userFlag(cmd)
			if userID == "" {
				return fmt.Errorf("--user is required (or set TRACKER_USER_ID)")
			}
			d, err := calendar.ParseInput(args[0], time.Now())
			if err != nil {
				return err
			}
			return runTotalizer(cmd, client, NewPromptKit(), userID, d, "")
		},
	}.Build()
}

func newResultsEditCmd() *cobra.Command {
	return LeafCommand{
		Use:   "edit ID",
		Short: "Change the service quantities of a registered result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			client, err := env.client()
			if err != nil {
				return err
			}
			return runResultsEdit(cmd, client, NewPromptKit(), api.ID(args[0]))
		},
	}.Build()
}

// loadTotalizer fetches the services and, for an existing result, its items
// in parallel. Either failure fails the whole load.
func loadTotalizer(ctx context.Context, client totalizerAPI, id api.ID) (*totalizer.Form, error) {
	var (
		services []api.Service
		detail   *api.ResultDetail
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = client.Services(gctx)
		return err
	})
	if id != "" {
		g.Go(func() error {
			var err error
			detail, err = client.Result(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return totalizer.FromResult(services, detail), nil
}

// runResultsEdit reads the day from the result itself, so the result is
// fetched once and only the services are loaded afterwards.
func runResultsEdit(cmd *cobra.Command, client totalizerAPI, kit PromptKit, id api.ID) error {
	ctx := cmdContext(cmd)

	detail, err := client.Result(ctx, id)
	if err != nil {
		return err
	}
	d, err := calendar.ParseISO(detail.ValidationDate)
	if err != nil {
		return fmt.Errorf("result %s: %w", id, err)
	}
	services, err := client.Services(ctx)
	if err != nil {
		return err
	}
	return saveTotalizer(cmd, client, kit, totalizer.FromResult(services, detail), "", d, id)
}

// runTotalizer shows the quantity form of a day and saves it: a new result
// when id is empty, an update of the existing one otherwise.
func runTotalizer(cmd *cobra.Command, client totalizerAPI, kit PromptKit, userID api.ID, day calendar.Date, id api.ID) error {
	form, err := loadTotalizer(cmdContext(cmd), client, id)
	if err != nil {
		return err
	}
	return saveTotalizer(cmd, client, kit, form, userID, day, id)
}

func saveTotalizer(cmd *cobra.Command, client totalizerAPI, kit PromptKit, form *totalizer.Form, userID api.ID, day calendar.Date, id api.ID) error {
	ctx := cmdContext(cmd)
	if len(form.Services()) == 0 {
		return fmt.Errorf("no services to register")
	}

	title := fmt.Sprintf("Results of %s", calendar.FormatDisplay(day))
	if err := kit.Quantities(title, form); err != nil {
		return err
	}

	var err error
	items := form.Items()
	if id == "" {
		err = client.CreateResult(ctx, api.NewResult{
			UserID:         userID,
			ValidationDate: calendar.FormatISO(day),
			Items:          items,
		})
	} else {
		err = client.UpdateResult(ctx, id, items)
	}
	if err != nil {
		return err
	}

	verb := "registered"
	if id != "" {
		verb = "updated"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s %s: %d services, total %d",
		verb, Primary(calendar.FormatDisplay(day)), len(items), form.Total())))
	return nil
}
