package domain

import "context"

// Action is one staged write against todo storage, such as inserting a todo
// or publishing its change event.
type Action interface {
	// Execute applies the write.
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute, e.g. deleting a todo that was
	// inserted before a later action in the same request failed. It is never
	// called for an action whose Execute failed.
	Rollback(ctx context.Context) error

	// Description names the action in logs ("insert todo", "delete todo 7").
	Description() string
}

// WriteStager is what the todo service sees of the per-request unit of
// work. Writes are staged under a key like "todo:7" so later reads in the
// same request observe them, and run in order when the request commits.
type WriteStager interface {
	// Stage records entity as the current value for key and queues action.
	Stage(key string, entity any, action Action) error

	// Execute runs action now, outside the queue. It is not rolled back if
	// the commit later fails.
	Execute(action Action) error
}
