package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/natasilva/task-tracker-front/internal/calendar"
)

// Login checks credentials. A response without a user means they were rejected.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, &resp)
	if err != nil {
		var rerr *RequestError
		if errors.As(err, &rerr) && (rerr.StatusCode == http.StatusUnauthorized || rerr.StatusCode == http.StatusNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.User == nil {
		return nil, ErrInvalidCredentials
	}
	return resp.User, nil
}

// ResultsQuery selects the days listed by Results. An empty UserID asks for
// every user (admin scope).
type ResultsQuery struct {
	UserID     ID
	Registered bool
	From       calendar.Date
	To         calendar.Date
}

func (q ResultsQuery) values() url.Values {
	v := url.Values{}
	v.Set("registered", strconv.FormatBool(q.Registered))
	v.Set("initialDate", calendar.FormatISO(q.From))
	v.Set("endDate", calendar.FormatISO(q.To))
	if q.UserID != "" {
		v.Set("id_user", q.UserID.String())
	}
	return v
}

// Results lists the days of the query range, in the order the API returns them.
func (c *Client) Results(ctx context.Context, q ResultsQuery) ([]Result, error) {
	var out []Result
	if err := c.do(ctx, http.MethodGet, "/results/", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Result fetches a registered result with its items.
func (c *Client) Result(ctx context.Context, id ID) (*ResultDetail, error) {
	var out ResultDetail
	if err := c.do(ctx, http.MethodGet, "/results/"+url.PathEscape(id.String()), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = id
	}
	return &out, nil
}

// CreateResult registers the quantities of a day.
func (c *Client) CreateResult(ctx context.Context, r NewResult) error {
	return c.do(ctx, http.MethodPost, "/results/", nil, r, nil)
}

// UpdateResult replaces the items of an existing result.
func (c *Client) UpdateResult(ctx context.Context, id ID, items []ItemInput) error {
	return c.do(ctx, http.MethodPatch, "/results/"+url.PathEscape(id.String()), nil, ResultUpdate{Items: items}, nil)
}

// Services lists the services a result can record.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.do(ctx, http.MethodGet, "/services/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users lists every account.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TargetReportQuery selects the user and period of a target report.
type TargetReportQuery struct {
	UserID ID
	From   calendar.Date
	To     calendar.Date
}

// TargetReport compares targets with achieved values for a user and period.
func (c *Client) TargetReport(ctx context.Context, q TargetReportQuery) ([]TargetReportRow, error) {
	v := url.Values{}
	v.Set("id_user", q.UserID.String())
	v.Set("initialDate", calendar.FormatISO(q.From))
	v.Set("endDate", calendar.FormatISO(q.To))

	var out []TargetReportRow
	if err := c.do(ctx, http.MethodGet, "/targets/report", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
