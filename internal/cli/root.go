package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Register and review daily service results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetHelpFunc(colorizedHelpFunc())
	root.PersistentFlags().String("api-url", "", "results API base URL (overrides API_URL)")
	root.PersistentFlags().Bool("verbose", false, "log API requests to stderr")

	root.AddCommand(
		newLoginCmd(),
		newAppCmd(),
		newResultsCmd(),
		newCalendarCmd(),
		newServicesCmd(),
		newUsersCmd(),
		newReportCmd(),
		newConfigCmd(),
		newMockServerCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute runs the command line and prints the error of a failed command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		root.PrintErrln(Error("error: " + err.Error()))
	}
	return err
}
