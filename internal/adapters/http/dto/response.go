// Package dto provides the HTTP request and response shapes of the
// /api/todos contract, including the {"error": ...} body for failures.
package dto

import "github.com/jsamuelsen11/todomvc/internal/domain/todo"

// TodoResponse is a single todo in HTTP responses.
type TodoResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ToTodoResponse converts a domain Todo to its response shape.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{ID: t.ID, Text: t.Text, Completed: t.Completed}
}

// ToTodoListResponse converts todos to a JSON array. A nil slice encodes
// as [] rather than null.
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	out := make([]TodoResponse, len(todos))
	for i := range todos {
		out[i] = ToTodoResponse(&todos[i])
	}
	return out
}
