package cli

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/mockapi"
	"github.com/natasilva/task-tracker-front/internal/totalizer"
	"github.com/spf13/cobra"
)

// newTestAPI starts the mock API seeded at fixedNow.
func newTestAPI(t *testing.T) (*api.Client, *mockapi.Store) {
	t.Helper()
	store := mockapi.Seed(fixedNow())
	srv := httptest.NewServer(mockapi.New(store, nil))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, time.Second), store
}

// newTestCmd returns a bare command writing to a buffer.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func answers(values ...string) PromptFunc {
	i := 0
	return func(prompt string) (string, error) {
		if i >= len(values) {
			return "", fmt.Errorf("unexpected prompt %q", prompt)
		}
		v := values[i]
		i++
		return v, nil
	}
}

func choices(values ...int) SelectFunc {
	i := 0
	return func(title string, options []string) (int, error) {
		if i >= len(values) {
			return 0, fmt.Errorf("unexpected select %q", title)
		}
		v := values[i]
		i++
		return v, nil
	}
}

func multiChoices(values ...[]int) MultiSelectFunc {
	i := 0
	return func(title string, options []string) ([]int, error) {
		if i >= len(values) {
			return nil, fmt.Errorf("unexpected multi-select %q", title)
		}
		v := values[i]
		i++
		return v, nil
	}
}

// fillQuantities answers each totalizer form with the next set of values,
// keyed by service name.
func fillQuantities(sets ...map[string]string) QuantitiesFunc {
	i := 0
	return func(title string, form *totalizer.Form) error {
		if i >= len(sets) {
			return fmt.Errorf("unexpected form %q", title)
		}
		set := sets[i]
		i++
		for _, s := range form.Services() {
			if v, ok := set[s.Name]; ok {
				form.Set(s.ID, v)
			}
		}
		return nil
	}
}
