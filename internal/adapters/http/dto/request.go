package dto

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

var (
	validate     = validator.New()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// TodoRequest is the JSON body for POST and PUT. ID is accepted but ignored;
// the server assigns ids on create and takes them from the path on update.
type TodoRequest struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ToTodo converts the request into a domain Todo without an id.
func (r *TodoRequest) ToTodo() *todo.Todo {
	return &todo.Todo{Text: r.Text, Completed: r.Completed}
}

// ListTodosQuery holds the query parameters for GET /api/todos.
type ListTodosQuery struct {
	Filter string `schema:"filter" validate:"omitempty,oneof=all active completed"`
}

// ParseListTodosQuery decodes and validates the list query string.
// Returns a *domain.ValidationError for malformed or unknown values.
func ParseListTodosQuery(values url.Values) (todo.Filter, error) {
	var q ListTodosQuery
	if err := queryDecoder.Decode(&q, values); err != nil {
		return "", &domain.ValidationError{Violations: []domain.Violation{
			{Field: "query", Message: err.Error()},
		}}
	}
	if err := validate.Struct(q); err != nil {
		return "", &domain.ValidationError{Violations: []domain.Violation{
			{Field: "filter", Message: "must be one of all, active, completed"},
		}}
	}
	return todo.ParseFilter(q.Filter)
}
