package appctx

import (
	"context"
	"errors"
	"testing"
)

type recordingAction struct {
	name       string
	failWith   error
	rollbackFn func() error
	log        *[]string
}

func (a *recordingAction) Execute(context.Context) error {
	if a.failWith != nil {
		return a.failWith
	}
	*a.log = append(*a.log, "execute:"+a.name)
	return nil
}

func (a *recordingAction) Rollback(context.Context) error {
	*a.log = append(*a.log, "rollback:"+a.name)
	if a.rollbackFn != nil {
		return a.rollbackFn()
	}
	return nil
}

func (a *recordingAction) Description() string { return a.name }

func TestGetOrFetch_Memoizes(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	calls := 0

	fetch := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := GetOrFetch(rc, "todo:1", fetch)
		if err != nil || v != 42 {
			t.Fatalf("GetOrFetch() = %d, %v; want 42, nil", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestGetOrFetch_CachesErrors(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	fetchErr := errors.New("boom")
	calls := 0

	fetch := func(context.Context) (string, error) {
		calls++
		return "", fetchErr
	}

	_, _ = GetOrFetch(rc, "k", fetch)
	if _, err := GetOrFetch(rc, "k", fetch); !errors.Is(err, fetchErr) {
		t.Fatalf("err = %v, want %v", err, fetchErr)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestGetOrFetch_TypeMismatch(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())

	_, _ = GetOrFetch(rc, "k", func(context.Context) (int, error) { return 1, nil })
	_, err := GetOrFetch(rc, "k", func(context.Context) (string, error) { return "", nil })
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestStage_ReadYourWrites(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	var log []string

	if err := rc.Stage("k", "staged", &recordingAction{name: "a", log: &log}); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	v, err := GetOrFetch(rc, "k", func(context.Context) (string, error) {
		t.Fatal("fetch called for staged key")
		return "", nil
	})
	if err != nil || v != "staged" {
		t.Errorf("GetOrFetch() = %q, %v; want staged, nil", v, err)
	}
	if len(log) != 0 {
		t.Errorf("action ran before Commit: %v", log)
	}
}

func TestStage_NilAction(t *testing.T) {
	t.Parallel()
	if err := New(context.Background()).Stage("k", 1, nil); !errors.Is(err, ErrNilAction) {
		t.Errorf("Stage(nil) = %v, want ErrNilAction", err)
	}
}

func TestCommit_RunsInOrder(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	var log []string

	_ = rc.Stage("a", nil, &recordingAction{name: "a", log: &log})
	_ = rc.Stage("b", nil, &recordingAction{name: "b", log: &log})

	if err := rc.Commit(context.Background()); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	want := []string{"execute:a", "execute:b"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestCommit_FailureRollsBackNewestFirst(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	var log []string
	failure := errors.New("storage down")

	_ = rc.Stage("a", nil, &recordingAction{name: "a", log: &log})
	_ = rc.Stage("b", nil, &recordingAction{name: "b", log: &log, rollbackFn: func() error { return errors.New("ignored") }})
	_ = rc.Stage("c", nil, &recordingAction{name: "c", log: &log, failWith: failure})

	err := rc.Commit(context.Background())
	if !errors.Is(err, failure) {
		t.Fatalf("Commit() = %v, want wrapping %v", err, failure)
	}
	want := []string{"execute:a", "execute:b", "rollback:b", "rollback:a"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestCommit_OnlyOnce(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())

	if err := rc.Commit(context.Background()); err != nil {
		t.Fatalf("first Commit() = %v", err)
	}
	if err := rc.Commit(context.Background()); !errors.Is(err, ErrAlreadyCommitted) {
		t.Errorf("second Commit() = %v, want ErrAlreadyCommitted", err)
	}
	var log []string
	if err := rc.Stage("k", nil, &recordingAction{name: "late", log: &log}); !errors.Is(err, ErrAlreadyCommitted) {
		t.Errorf("Stage after Commit = %v, want ErrAlreadyCommitted", err)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	installed := New(context.Background())
	ctx := WithRequestContext(context.Background(), installed)
	if got := FromContext(ctx); got != installed {
		t.Error("FromContext did not return the installed RequestContext")
	}

	_ = installed.Commit(ctx)
	if got := FromContext(ctx); got == installed {
		t.Error("FromContext returned a committed RequestContext")
	}

	if FromContext(context.Background()) == nil {
		t.Error("FromContext(empty) = nil, want fresh RequestContext")
	}
}

func TestExecute_RunsImmediately(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	var log []string

	if err := rc.Execute(&recordingAction{name: "now", log: &log}); err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if len(log) != 1 || log[0] != "execute:now" {
		t.Errorf("log = %v, want [execute:now]", log)
	}
	if err := rc.Commit(context.Background()); err != nil {
		t.Errorf("Commit() = %v", err)
	}
	if len(log) != 1 {
		t.Errorf("executed action was queued: %v", log)
	}
}
