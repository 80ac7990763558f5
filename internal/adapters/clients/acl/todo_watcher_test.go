package acl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/todomvc/internal/adapters/http/events"
	domtodo "github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/httpclient"
)

func newFeedServer(t *testing.T) (*events.Hub, *httptest.Server) {
	t.Helper()

	hub := events.NewHub(nil)
	mux := http.NewServeMux()
	mux.Handle(eventsPath, hub)
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return hub, ts
}

func waitForSubscribers(t *testing.T, hub *events.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Subscribers() = %d, want %d", hub.Subscribers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatchTodos_ReceivesChanges(t *testing.T) {
	t.Parallel()

	hub, ts := newFeedServer(t)
	client := NewTodoClient(newTestClient(t, ts.URL), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := client.WatchTodos(ctx)
	if err != nil {
		t.Fatalf("WatchTodos() error = %v", err)
	}
	waitForSubscribers(t, hub, 1)

	want := domtodo.Change{Type: domtodo.ChangeUpdated, Todo: domtodo.Todo{ID: 3, Text: "abc", Completed: true}}
	hub.Publish(context.Background(), want)

	select {
	case got, ok := <-changes:
		if !ok {
			t.Fatal("changes closed before delivering")
		}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatchTodos_ClosesOnCancel(t *testing.T) {
	t.Parallel()

	hub, ts := newFeedServer(t)
	client := NewTodoClient(newTestClient(t, ts.URL), nil)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := client.WatchTodos(ctx)
	if err != nil {
		t.Fatalf("WatchTodos() error = %v", err)
	}
	waitForSubscribers(t, hub, 1)

	cancel()

	select {
	case _, ok := <-changes:
		if ok {
			t.Error("received a change after cancel, want closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("changes not closed after cancel")
	}
	waitForSubscribers(t, hub, 0)
}

func TestWatchTodos_ClosesWhenServerCloses(t *testing.T) {
	t.Parallel()

	hub, ts := newFeedServer(t)
	client := NewTodoClient(newTestClient(t, ts.URL), nil)

	changes, err := client.WatchTodos(context.Background())
	if err != nil {
		t.Fatalf("WatchTodos() error = %v", err)
	}
	waitForSubscribers(t, hub, 1)

	hub.Close()

	select {
	case _, ok := <-changes:
		if ok {
			t.Error("received a change, want closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("changes not closed after hub close")
	}
}

func TestWatchTodos_DialFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), nil)
	if _, err := client.WatchTodos(context.Background()); err == nil {
		t.Error("WatchTodos() error = nil, want dial failure")
	}
}

func TestWatchTodos_HandshakeCarriesRequestID(t *testing.T) {
	t.Parallel()

	hub := events.NewHub(nil)
	got := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(eventsPath, func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("X-Request-ID")
		hub.ServeHTTP(w, r)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})

	client := NewTodoClient(newTestClient(t, ts.URL), nil)
	ctx, cancel := context.WithCancel(httpclient.WithRequestID(context.Background(), "tui-42"))
	defer cancel()

	if _, err := client.WatchTodos(ctx); err != nil {
		t.Fatalf("WatchTodos() error = %v", err)
	}
	if id := <-got; id != "tui-42" {
		t.Errorf("X-Request-ID = %q, want %q", id, "tui-42")
	}
}
