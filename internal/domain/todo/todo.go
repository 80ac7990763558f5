package todo

// Todo is a single task. ID is assigned by the server and never changes after
// that; a zero ID marks a todo that has not been stored yet.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Validate checks the todo against the default rules.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) listing
// every violation, or nil if all rules pass.
func (t *Todo) Validate() error {
	return DefaultValidator().Check(*t)
}

// Saved reports whether the server has assigned an id.
func (t *Todo) Saved() bool {
	return t.ID > 0
}
