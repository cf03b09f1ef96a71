package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/shopspring/decimal"
)

// ID is an opaque resource identifier. The API may send it as a JSON number
// or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON sends IDs that are canonical integers back as numbers and
// anything else, "007" included, as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// User is an account as returned by login and the users listing.
type User struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	CPF     string `json:"cpf,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// Result is one day in the results listing. An empty ID means nothing has
// been registered for that day yet.
type Result struct {
	ID             ID     `json:"id,omitempty"`
	ValidationDate string `json:"validation_date"`
}

// Registered reports whether a result exists for the day.
func (r Result) Registered() bool { return r.ID != "" }

// Date returns the calendar day of the result.
func (r Result) Date() (calendar.Date, error) {
	return calendar.ParseISO(r.ValidationDate)
}

// Service is a kind of work whose quantity is recorded per day.
type Service struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ResultItem is the quantity recorded for one service.
type ResultItem struct {
	ID       ID      `json:"id,omitempty"`
	Service  Service `json:"service"`
	Quantity int     `json:"quantity"`
}

// ResultDetail is a registered result with its items.
type ResultDetail struct {
	ID             ID           `json:"id,omitempty"`
	ValidationDate string       `json:"validation_date,omitempty"`
	Items          []ResultItem `json:"items"`
}

// ItemInput is one quantity sent when creating or updating a result.
type ItemInput struct {
	ServiceID ID  `json:"id_service"`
	Quantity  int `json:"quantity"`
}

// NewResult is the body of POST /results/.
type NewResult struct {
	UserID         ID          `json:"id_user"`
	ValidationDate string      `json:"validation_date"`
	Items          []ItemInput `json:"items"`
}

// ResultUpdate is the body of PATCH /results/:id.
type ResultUpdate struct {
	Items []ItemInput `json:"items"`
}

// TargetReportRow compares a target with what was achieved.
type TargetReportRow struct {
	Name          string          `json:"name"`
	TargetValue   decimal.Decimal `json:"targetvalue"`
	AchievedValue decimal.Decimal `json:"achievedvalue"`
	Description   string          `json:"description"`
}

// Credentials is the body of POST /users/login.
type Credentials struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

type loginResponse struct {
	User *User `json:"user"`
}
