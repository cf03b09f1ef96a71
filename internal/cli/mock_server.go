package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natasilva/task-tracker-front/internal/mockapi"
	"github.com/natasilva/task-tracker-front/internal/sl"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newMockServerCmd() *cobra.Command {
	return LeafCommand{
		Use:   "mock-server",
		Short: "Serve an in-memory API for development",
		Long: `Serves the results API from memory. Unless --empty is given it is seeded
with two accounts (CPF 11111111111 / secret and the admin 00000000000 / admin),
three services, targets and a few results in the current month.`,
		StrFlags: []StringFlag{
			{Name: "addr", Usage: "listen address", Default: "127.0.0.1:3000"},
		},
		BoolFlags: []BoolFlag{
			{Name: "empty", Usage: "start without demo data"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")
			empty, _ := cmd.Flags().GetBool("empty")

			store := mockapi.NewStore()
			if !empty {
				store = mockapi.Seed(time.Now())
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runMockServer(ctx, cmd, ln, store, env.log)
		},
	}.Build()
}

// runMockServer serves the mock API on ln until ctx is done.
func runMockServer(ctx context.Context, cmd *cobra.Command, ln net.Listener, store *mockapi.Store, log *slog.Logger) error {
	srv := &http.Server{
		Handler:           mockapi.New(store, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("mock API listening on %s", Primary("http://"+ln.Addr().String()))))

	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down mock API")
		if err := srv.Shutdown(timeoutCtx); err != nil {
			log.Error("shutdown failed", sl.Err(err))
			return err
		}
		return <-errCh
	}
}
