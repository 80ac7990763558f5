package todo

import (
	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// ToDomainTodo converts a wire todo to the domain entity.
func ToDomainTodo(dto *TodoDTO) todo.Todo {
	return todo.Todo{
		ID:        dto.ID,
		Text:      dto.Text,
		Completed: dto.Completed,
	}
}

// ToDomainTodoList converts a wire list. A nil list yields an empty slice.
func ToDomainTodoList(dtos []TodoDTO) []todo.Todo {
	todos := make([]todo.Todo, len(dtos))
	for i := range dtos {
		todos[i] = ToDomainTodo(&dtos[i])
	}
	return todos
}

// ToRequest converts a domain todo to a request body. The id is dropped.
func ToRequest(t *todo.Todo) TodoRequestDTO {
	return TodoRequestDTO{
		Text:      t.Text,
		Completed: t.Completed,
	}
}

// ToDomainChange converts a change feed frame. ok is false for unknown types.
func ToDomainChange(dto *ChangeDTO) (todo.Change, bool) {
	typ := todo.ChangeType(dto.Type)
	switch typ {
	case todo.ChangeCreated, todo.ChangeUpdated, todo.ChangeDeleted:
	default:
		return todo.Change{}, false
	}
	return todo.Change{Type: typ, Todo: ToDomainTodo(&dto.Todo)}, true
}

// ToDomainViolations converts an error body's violations.
func ToDomainViolations(dtos []ViolationDTO) []domain.Violation {
	out := make([]domain.Violation, len(dtos))
	for i, v := range dtos {
		out[i] = domain.Violation{Field: v.Field, Message: v.Message}
	}
	return out
}
