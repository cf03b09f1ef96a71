package cli

import (
	"fmt"

	"github.com/natasilva/task-tracker-front/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return GroupCommand{
		Use:   "config",
		Short: "Inspect the configuration",
		Subcommands: []*cobra.Command{
			LeafCommand{
				Use:   "get",
				Short: "Show the resolved configuration",
				RunE: func(cmd *cobra.Command, args []string) error {
					env, err := loadEnv(cmd)
					if err != nil {
						return err
					}
					return runConfigGet(cmd, env.cfg)
				},
			}.Build(),
		},
	}.Build()
}

func runConfigGet(cmd *cobra.Command, cfg *config.Config) error {
	source := "environment and defaults"
	if cfg.Path != "" {
		source = cfg.Path
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("Configuration from %s:", Primary(source))))

	show := func(key, value string) {
		if value == "" {
			value = Silent("(not set)")
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", key, value)
	}
	show("api_url", cfg.APIURL)
	show("timeout", cfg.Timeout.String())
	show("user_id", cfg.UserID)
	show("workdays", cfg.Workdays)
	show("log_level", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Warning(err.Error()))
	}
	return nil
}
