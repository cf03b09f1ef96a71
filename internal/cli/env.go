package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/config"
	"github.com/natasilva/task-tracker-front/internal/sl"
	"github.com/spf13/cobra"
)

// appEnv is what every command gets from the resolved configuration.
type appEnv struct {
	cfg *config.Config
	log *slog.Logger
}

// loadEnv reads the configuration and applies the global flags on top of it.
func loadEnv(cmd *cobra.Command) (*appEnv, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	workDir, _ := os.Getwd()

	cfg, err := config.Load(homeDir, workDir)
	if err != nil {
		return nil, err
	}
	return newEnv(cmd, cfg)
}

func newEnv(cmd *cobra.Command, cfg *config.Config) (*appEnv, error) {
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	level, err := sl.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &appEnv{cfg: cfg, log: sl.New(cmd.ErrOrStderr(), level)}, nil
}

// client validates the configuration and returns an API client.
func (e *appEnv) client() (*api.Client, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	return api.NewClient(e.cfg.APIURL, e.cfg.Timeout, api.WithLogger(e.log)), nil
}

// userFlag returns --user, falling back to the configured user.
func (e *appEnv) userFlag(cmd *cobra.Command) api.ID {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return api.ID(u)
	}
	return api.ID(e.cfg.UserID)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
