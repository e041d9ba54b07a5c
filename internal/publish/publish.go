// Package publish pushes solution reports to a Socket.IO server so remote
// viewers can render them.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/wordgrid/internal/ctxlog"
	"github.com/specialistvlad/wordgrid/internal/export"
)

// Event is the name reports are emitted under.
const Event = "solution"

// DefaultConnectTimeout bounds how long Dial waits for the handshake.
const DefaultConnectTimeout = 15 * time.Second

// ErrNotConnected is returned by Publish after the connection dropped.
var ErrNotConnected = errors.New("socket.io client is not connected")

// Publisher emits reports over one Socket.IO connection.
type Publisher struct {
	io *socket.Socket
}

// Dial connects to rawURL over websocket and joins namespace. The URL path,
// if any, is used as the Socket.IO endpoint path.
func Dial(ctx context.Context, rawURL, namespace string, timeout time.Duration) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL, "namespace", namespace)

	base, path, err := splitURL(rawURL)
	if err != nil {
		return nil, err
	}
	if namespace == "" {
		namespace = "/"
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	opts := socket.DefaultOptions()
	if path != "" {
		opts.SetPath(path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(base, opts)
	io := manager.Socket(namespace, opts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to publish server", "sid", io.Id())
		notify(connected, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Publish server refused connection", "error", err)
		notify(connected, err)
	})

	logger.Debug("Connecting to publish server...")
	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Publish emits one report as a solution event.
func (p *Publisher) Publish(ctx context.Context, report *export.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.io.Connected() {
		return ErrNotConnected
	}
	data, err := payload(report)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Emitting report", "event", Event, "puzzle", report.Puzzle, "sid", p.io.Id())
	p.io.Emit(Event, data)
	return nil
}

// Close disconnects from the server.
func (p *Publisher) Close() {
	p.io.Disconnect()
}

// notify delivers the first handshake outcome. Later events arrive after Dial
// has stopped listening and are dropped so the socket's event loop never
// blocks.
func notify(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// splitURL separates the server origin from the Socket.IO endpoint path.
func splitURL(rawURL string) (base, path string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse publish URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("publish URL %q must be absolute, e.g. http://localhost:3000", rawURL)
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), u.Path, nil
}

// payload converts a report into the plain map the Socket.IO encoder sends,
// keeping the JSON field names.
func payload(report *export.Report) (map[string]any, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return out, nil
}
