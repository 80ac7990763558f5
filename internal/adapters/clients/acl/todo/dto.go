// Package todo holds the wire shapes of the todo API and their translation
// to domain types. It is the only place that knows the JSON layout.
package todo

// TodoDTO is a todo as the API returns it.
type TodoDTO struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoRequestDTO is the body of POST and PUT. The id travels in the path.
type TodoRequestDTO struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ChangeDTO is one frame of the change feed.
type ChangeDTO struct {
	Type string  `json:"type"`
	Todo TodoDTO `json:"todo"`
}

// ViolationDTO is one entry of an error body's "errors" array.
type ViolationDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorDTO is the body of every non-2xx API response.
type ErrorDTO struct {
	Error  string         `json:"error"`
	Errors []ViolationDTO `json:"errors,omitempty"`
}
