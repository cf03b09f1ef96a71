// Package mockapi is an in-memory implementation of the results API, used by
// the mock-server command and as a test fixture.
package mockapi

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/natasilva/task-tracker-front/internal/stringutil"
	"github.com/shopspring/decimal"
)

// Account is a user plus the password the mock accepts for it.
type Account struct {
	api.User
	Password string
}

// Target is the daily target of one user for one service.
type Target struct {
	UserID    api.ID
	ServiceID api.ID
	Daily     decimal.Decimal
}

type result struct {
	id     api.ID
	userID api.ID
	date   calendar.Date
	items  []api.ItemInput
}

// Store holds the mock data. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	accounts []Account
	services []api.Service
	targets  []Target
	results  map[api.ID]*result
	nextID   int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{results: make(map[api.ID]*result), nextID: 1}
}

// AddAccount registers a user that can log in.
func (s *Store) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.CPF = stringutil.Digits(a.CPF)
	s.accounts = append(s.accounts, a)
}

// AddService registers a service.
func (s *Store) AddService(svc api.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append(s.services, svc)
}

// AddTarget registers a daily target.
func (s *Store) AddTarget(t Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, t)
}

// AddResult stores a result and returns its ID.
func (s *Store) AddResult(userID api.ID, date calendar.Date, items []api.ItemInput) api.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addResultLocked(userID, date, items)
}

func (s *Store) addResultLocked(userID api.ID, date calendar.Date, items []api.ItemInput) api.ID {
	id := api.ID(fmt.Sprintf("%d", s.nextID))
	s.nextID++
	s.results[id] = &result{id: id, userID: userID, date: date, items: append([]api.ItemInput(nil), items...)}
	return id
}

func (s *Store) login(cpf, password string) *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	cpf = stringutil.Digits(cpf)
	for _, a := range s.accounts {
		if a.CPF == cpf && a.Password == password {
			u := a.User
			return &u
		}
	}
	return nil
}

func (s *Store) users() []api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.User, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = api.User{ID: a.ID, Name: a.Name, IsAdmin: a.IsAdmin}
	}
	return out
}

func (s *Store) serviceList() []api.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Service(nil), s.services...)
}

func (s *Store) serviceByID(id api.ID) (api.Service, bool) {
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, true
		}
	}
	return api.Service{}, false
}

// listResults returns one row per day in the range. Days with results come
// first in their day slot, days without are listed with no ID unless
// registeredOnly is set. An empty userID includes every user's results.
func (s *Store) listResults(userID api.ID, registeredOnly bool, from, to calendar.Date) []api.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDay := make(map[calendar.Date][]*result)
	for _, r := range s.results {
		if userID != "" && r.userID != userID {
			continue
		}
		byDay[r.date] = append(byDay[r.date], r)
	}

	var out []api.Result
	for d := from; !d.After(to); d = d.AddDays(1) {
		rs := byDay[d]
		if len(rs) == 0 {
			if !registeredOnly {
				out = append(out, api.Result{ValidationDate: calendar.FormatISO(d)})
			}
			continue
		}
		sort.Slice(rs, func(i, j int) bool { return rs[i].id < rs[j].id })
		for _, r := range rs {
			out = append(out, api.Result{ID: r.id, ValidationDate: calendar.FormatISO(d)})
		}
	}
	return out
}

func (s *Store) result(id api.ID) (*api.ResultDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.results[id]
	if !ok {
		return nil, false
	}
	detail := &api.ResultDetail{ID: r.id, ValidationDate: calendar.FormatISO(r.date)}
	for _, it := range r.items {
		svc, ok := s.serviceByID(it.ServiceID)
		if !ok {
			svc = api.Service{ID: it.ServiceID}
		}
		detail.Items = append(detail.Items, api.ResultItem{Service: svc, Quantity: it.Quantity})
	}
	return detail, true
}

func (s *Store) createResult(nr api.NewResult) (api.ID, error) {
	date, err := calendar.ParseISO(nr.ValidationDate)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addResultLocked(nr.UserID, date, nr.Items), nil
}

func (s *Store) updateResult(id api.ID, items []api.ItemInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[id]
	if !ok {
		return false
	}
	r.items = append([]api.ItemInput(nil), items...)
	return true
}

func (s *Store) targetReport(userID api.ID, from, to calendar.Date) []api.TargetReportRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := decimal.NewFromInt(int64(to.Time().Sub(from.Time()).Hours()/24) + 1)

	var out []api.TargetReportRow
	for _, t := range s.targets {
		if t.UserID != userID {
			continue
		}
		achieved := 0
		for _, r := range s.results {
			if r.userID != userID || r.date.Before(from) || r.date.After(to) {
				continue
			}
			for _, it := range r.items {
				if it.ServiceID == t.ServiceID {
					achieved += it.Quantity
				}
			}
		}
		name := string(t.ServiceID)
		if svc, ok := s.serviceByID(t.ServiceID); ok {
			name = svc.Name
		}
		target := t.Daily.Mul(days)
		out = append(out, api.TargetReportRow{
			Name:          name,
			TargetValue:   target,
			AchievedValue: decimal.NewFromInt(int64(achieved)),
			Description:   fmt.Sprintf("%d of %s %s", achieved, target.String(), name),
		})
	}
	return out
}

// Seed returns a store with demo accounts, services, targets and a few
// results in the month of now.
func Seed(now time.Time) *Store {
	s := NewStore()
	s.AddAccount(Account{User: api.User{ID: "1", Name: "Ana Souza", CPF: "11111111111"}, Password: "secret"})
	s.AddAccount(Account{User: api.User{ID: "2", Name: "Admin", CPF: "00000000000", IsAdmin: true}, Password: "admin"})

	s.AddService(api.Service{ID: "1", Name: "Deliveries"})
	s.AddService(api.Service{ID: "2", Name: "Installations"})
	s.AddService(api.Service{ID: "3", Name: "Repairs"})

	s.AddTarget(Target{UserID: "1", ServiceID: "1", Daily: decimal.NewFromInt(10)})
	s.AddTarget(Target{UserID: "1", ServiceID: "2", Daily: decimal.NewFromInt(2)})
	s.AddTarget(Target{UserID: "1", ServiceID: "3", Daily: decimal.RequireFromString("1.5")})

	today := calendar.Today(now)
	first := calendar.Date{Year: today.Year, Month: today.Month, Day: 1}
	for i := 0; i < 3 && !first.AddDays(i).After(today); i++ {
		s.AddResult("1", first.AddDays(i), []api.ItemInput{
			{ServiceID: "1", Quantity: 8 + i},
			{ServiceID: "2", Quantity: 1},
			{ServiceID: "3", Quantity: i},
		})
	}
	return s
}
