package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

var (
	_ domain.Action = (*insertAction)(nil)
	_ domain.Action = (*updateAction)(nil)
	_ domain.Action = (*deleteAction)(nil)
	_ domain.Action = (*publishAction)(nil)
)

type insertAction struct {
	repo    ports.TodoRepository
	input   todo.Todo
	created *todo.Todo
}

func (a *insertAction) Execute(ctx context.Context) error {
	created, err := a.repo.InsertTodo(ctx, &a.input)
	if err != nil {
		return err
	}
	a.created = created
	return nil
}

func (a *insertAction) Rollback(ctx context.Context) error {
	if a.created == nil {
		return nil
	}
	return a.repo.DeleteTodo(ctx, a.created.ID)
}

func (a *insertAction) Description() string {
	return fmt.Sprintf("insert todo %q", a.input.Text)
}

type updateAction struct {
	repo    ports.TodoRepository
	prev    todo.Todo
	next    todo.Todo
	updated *todo.Todo
}

func (a *updateAction) Execute(ctx context.Context) error {
	updated, err := a.repo.UpdateTodo(ctx, a.next.ID, &a.next)
	if err != nil {
		return err
	}
	a.updated = updated
	return nil
}

func (a *updateAction) Rollback(ctx context.Context) error {
	_, err := a.repo.UpdateTodo(ctx, a.prev.ID, &a.prev)
	return err
}

func (a *updateAction) Description() string {
	return fmt.Sprintf("update todo %d", a.next.ID)
}

// deleteAction rollback re-inserts the text and state; storage assigns a new id.
type deleteAction struct {
	repo    ports.TodoRepository
	removed todo.Todo
}

func (a *deleteAction) Execute(ctx context.Context) error {
	return a.repo.DeleteTodo(ctx, a.removed.ID)
}

func (a *deleteAction) Rollback(ctx context.Context) error {
	_, err := a.repo.InsertTodo(ctx, &a.removed)
	return err
}

func (a *deleteAction) Description() string {
	return fmt.Sprintf("delete todo %d", a.removed.ID)
}

type publishAction struct {
	publisher ports.ChangePublisher
	change    todo.Change
}

func (a *publishAction) Execute(ctx context.Context) error {
	a.publisher.Publish(ctx, a.change)
	return nil
}

func (a *publishAction) Rollback(context.Context) error { return nil }

func (a *publishAction) Description() string {
	return fmt.Sprintf("publish %s todo %d", a.change.Type, a.change.Todo.ID)
}
