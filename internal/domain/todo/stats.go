package todo

import "strconv"

// RemainingCount returns the number of todos that are not completed.
func RemainingCount(todos []Todo) int {
	var n int
	for i := range todos {
		if !todos[i].Completed {
			n++
		}
	}
	return n
}

// AllChecked reports whether every todo is completed. An empty list is not
// considered checked.
func AllChecked(todos []Todo) bool {
	return len(todos) > 0 && RemainingCount(todos) == 0
}

// Partition splits todos into completed and active, preserving order.
func Partition(todos []Todo) (completed, active []Todo) {
	for i := range todos {
		if todos[i].Completed {
			completed = append(completed, todos[i])
		} else {
			active = append(active, todos[i])
		}
	}
	return completed, active
}

// ItemsLeftLabel renders the footer counter, e.g. "1 item left".
func ItemsLeftLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return strconv.Itoa(n) + " items left"
}
