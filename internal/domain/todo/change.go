package todo

// ChangeType names what happened to a todo.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// Change describes a single stored mutation. It is broadcast to watching
// clients after the storage write succeeds.
type Change struct {
	Type ChangeType `json:"type"`
	Todo Todo       `json:"todo"`
}
