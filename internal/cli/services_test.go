package cli

import (
	"context"
	"testing"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyLists struct{}

func (emptyLists) Services(context.Context) ([]api.Service, error) { return nil, nil }
func (emptyLists) Users(context.Context) ([]api.User, error)       { return nil, nil }

func TestServicesList(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()

	require.NoError(t, runServicesList(cmd, client))

	assert.Contains(t, out.String(), "   1  Deliveries")
	assert.Contains(t, out.String(), "   3  Repairs")
}

func TestUsersList(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()

	require.NoError(t, runUsersList(cmd, client))

	assert.Contains(t, out.String(), "   1  Ana Souza\n")
	assert.Contains(t, out.String(), "   2  Admin (admin)")
}

func TestListsEmpty(t *testing.T) {
	cmd, out := newTestCmd()
	require.NoError(t, runServicesList(cmd, emptyLists{}))
	require.NoError(t, runUsersList(cmd, emptyLists{}))
	assert.Equal(t, "no services\nno users\n", out.String())
}

func TestServicesListRequestFailed(t *testing.T) {
	cmd, _ := newTestCmd()
	client := api.NewClient("http://127.0.0.1:1", 0)
	assert.ErrorIs(t, runServicesList(cmd, client), api.ErrRequestFailed)
}
