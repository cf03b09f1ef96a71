// Package totalizer holds the per-service quantity form used to register or
// edit the result of a day.
package totalizer

import (
	"strconv"
	"strings"

	"github.com/natasilva/task-tracker-front/internal/api"
)

// Form maps each service to the quantity typed for it. Values are kept as
// typed; they are only converted to numbers by Items.
type Form struct {
	services []api.Service
	values   map[api.ID]string
}

// New creates a blank form for services.
func New(services []api.Service) *Form {
	f := &Form{values: make(map[api.ID]string, len(services))}
	for _, s := range services {
		f.addService(s)
	}
	return f
}

// FromResult creates a form prefilled with the quantities of detail. Items
// for services missing from services are kept, after the known ones.
func FromResult(services []api.Service, detail *api.ResultDetail) *Form {
	f := New(services)
	if detail == nil {
		return f
	}
	for _, it := range detail.Items {
		f.addService(it.Service)
		f.values[it.Service.ID] = strconv.Itoa(it.Quantity)
	}
	return f
}

func (f *Form) addService(s api.Service) {
	if _, ok := f.values[s.ID]; ok {
		return
	}
	f.services = append(f.services, s)
	f.values[s.ID] = ""
}

// Services returns the services of the form in display order.
func (f *Form) Services() []api.Service {
	return append([]api.Service(nil), f.services...)
}

// Set stores the raw value typed for a service. Unknown services are ignored
// and reported with false.
func (f *Form) Set(id api.ID, value string) bool {
	if _, ok := f.values[id]; !ok {
		return false
	}
	f.values[id] = value
	return true
}

// Merge sets several values at once; see Set.
func (f *Form) Merge(values map[api.ID]string) {
	for id, v := range values {
		f.Set(id, v)
	}
}

// Value returns the raw value of a service.
func (f *Form) Value(id api.ID) string {
	return f.values[id]
}

// Quantity returns the value of a service as a number.
func (f *Form) Quantity(id api.ID) int {
	return Quantity(f.values[id])
}

// Items returns one item per service, in display order.
func (f *Form) Items() []api.ItemInput {
	out := make([]api.ItemInput, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, api.ItemInput{ServiceID: s.ID, Quantity: Quantity(f.values[s.ID])})
	}
	return out
}

// Total is the sum of every quantity.
func (f *Form) Total() int {
	total := 0
	for _, it := range f.Items() {
		total += it.Quantity
	}
	return total
}

// Quantity reads the leading integer of s, ignoring surrounding spaces and
// anything after the digits. Values without a leading integer count as 0.
//
//	Quantity("12")   == 12
//	Quantity(" 7 x") == 7
//	Quantity("-3")   == -3
//	Quantity("abc")  == 0
func Quantity(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1<<31 {
			break
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
