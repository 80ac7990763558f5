package todo

import (
	"testing"

	"github.com/jsamuelsen11/todomvc/internal/domain"
	domtodo "github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

func TestToDomainTodo_FieldMapping(t *testing.T) {
	t.Parallel()

	got := ToDomainTodo(&TodoDTO{ID: 42, Text: "Buy groceries", Completed: true})

	want := domtodo.Todo{ID: 42, Text: "Buy groceries", Completed: true}
	if got != want {
		t.Errorf("ToDomainTodo() = %+v, want %+v", got, want)
	}
}

func TestToDomainTodoList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []TodoDTO
		wantLen int
	}{
		{name: "nil list", input: nil, wantLen: 0},
		{name: "empty list", input: []TodoDTO{}, wantLen: 0},
		{
			name:    "keeps order",
			input:   []TodoDTO{{ID: 2, Text: "second"}, {ID: 1, Text: "first"}},
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ToDomainTodoList(tt.input)
			if got == nil {
				t.Fatal("ToDomainTodoList() = nil, want non-nil slice")
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			for i := range got {
				if got[i].ID != tt.input[i].ID {
					t.Errorf("[%d].ID = %d, want %d", i, got[i].ID, tt.input[i].ID)
				}
			}
		})
	}
}

func TestToRequest_DropsID(t *testing.T) {
	t.Parallel()

	got := ToRequest(&domtodo.Todo{ID: 9, Text: "walk dog", Completed: true})

	want := TodoRequestDTO{Text: "walk dog", Completed: true}
	if got != want {
		t.Errorf("ToRequest() = %+v, want %+v", got, want)
	}
}

func TestToDomainChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		typ    string
		wantOK bool
	}{
		{name: "created", typ: "created", wantOK: true},
		{name: "updated", typ: "updated", wantOK: true},
		{name: "deleted", typ: "deleted", wantOK: true},
		{name: "unknown", typ: "renamed", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ToDomainChange(&ChangeDTO{Type: tt.typ, Todo: TodoDTO{ID: 3, Text: "abc"}})
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (string(got.Type) != tt.typ || got.Todo.ID != 3) {
				t.Errorf("change = %+v", got)
			}
		})
	}
}

func TestToDomainViolations(t *testing.T) {
	t.Parallel()

	got := ToDomainViolations([]ViolationDTO{{Field: "text", Message: "too short"}})

	want := []domain.Violation{{Field: "text", Message: "too short"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("ToDomainViolations() = %v, want %v", got, want)
	}
}
