package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jsamuelsen11/todomvc/internal/adapters/clients/acl/todo"
	domtodo "github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

const (
	eventsPath       = todosPath + "/events"
	handshakeTimeout = 10 * time.Second
	changeBuffer     = 16
)

func newWebsocketDialer() *websocket.Dialer {
	return &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}
}

// WatchTodos subscribes to the server's change feed. The handshake goes
// through the HTTP client's circuit breaker and carries the caller's request
// IDs. The returned channel is closed when ctx is done, the server closes the
// feed, or a frame cannot be read. Frames of unknown type are skipped.
func (c *TodoClient) WatchTodos(ctx context.Context) (<-chan domtodo.Change, error) {
	u, err := eventsURL(c.http.BaseURL())
	if err != nil {
		return nil, err
	}

	var conn *websocket.Conn
	err = c.http.Guard(ctx, "WS "+eventsPath, func(ctx context.Context, h http.Header) error {
		ws, resp, dialErr := c.dialer.DialContext(ctx, u, h)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		conn = ws
		return dialErr
	})
	if err != nil {
		return nil, fmt.Errorf("dialing change feed: %w", err)
	}

	changes := make(chan domtodo.Change, changeBuffer)

	// Closing the conn unblocks ReadJSON when the caller gives up.
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		_ = conn.Close()
	}()

	go func() {
		defer close(changes)
		defer close(stop)

		for {
			var dto todo.ChangeDTO
			if err := conn.ReadJSON(&dto); err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.logger.WarnContext(ctx, "change feed closed", slog.Any("error", err))
				}
				return
			}

			change, ok := todo.ToDomainChange(&dto)
			if !ok {
				c.logger.DebugContext(ctx, "skipping unknown change", slog.String("type", dto.Type))
				continue
			}

			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}

// eventsURL turns the API base URL into the websocket URL of the feed.
func eventsURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("base url must use http or https, got %q", u.Scheme)
	}

	return u.JoinPath(eventsPath).String(), nil
}
