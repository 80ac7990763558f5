package todo

import "fmt"

// Filter selects which todos a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// IsValid returns true if the filter is one of the defined constants.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (f Filter) String() string {
	return string(f)
}

// FromRoute maps a route such as "active" or "#/completed" to a filter.
// Unknown routes fall back to FilterAll.
func FromRoute(route string) Filter {
	for len(route) > 0 && (route[0] == '#' || route[0] == '/') {
		route = route[1:]
	}
	f := Filter(route)
	if !f.IsValid() {
		return FilterAll
	}
	return f
}

// ParseFilter is the strict form of FromRoute used for request input.
// The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown filter %q", s)
	}
	return f, nil
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the todos that pass the filter, preserving order.
func (f Filter) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for i := range todos {
		if f.Match(todos[i]) {
			out = append(out, todos[i])
		}
	}
	return out
}
