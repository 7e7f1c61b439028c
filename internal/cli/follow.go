package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/metorial/homewatch/internal/models"
)

var ErrNoController = errors.New("no controller address to follow")

// FeedURL turns an API base URL into the address of its change feed.
func FeedURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/api/v1/feed"
}

type feedConn struct {
	conn   *websocket.Conn
	events chan map[string]interface{}
	errs   chan error
	done   chan struct{}
}

func dialFeed(ctx context.Context, base string) (*feedConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, FeedURL(base), nil)
	if err != nil {
		return nil, fmt.Errorf("connect feed at %s: %w", base, err)
	}

	f := &feedConn{
		conn:   conn,
		events: make(chan map[string]interface{}),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go f.read()
	return f, nil
}

func (f *feedConn) read() {
	for {
		var event map[string]interface{}
		if err := f.conn.ReadJSON(&event); err != nil {
			f.errs <- err
			return
		}
		select {
		case f.events <- event:
		case <-f.done:
			return
		}
	}
}

func (f *feedConn) close() {
	if f == nil {
		return
	}
	close(f.done)
	f.conn.Close()
}

// Follow streams feed events to handle from the controller at the latest
// base URL received on bases, reconnecting whenever a new one arrives. It
// returns nil when ctx is done, and the read error when the connection drops
// and no further address can arrive.
func Follow(ctx context.Context, bases <-chan string, handle func(map[string]interface{})) error {
	var current *feedConn
	defer func() { current.close() }()

	for {
		var events <-chan map[string]interface{}
		var errs <-chan error
		if current != nil {
			events, errs = current.events, current.errs
		}

		select {
		case <-ctx.Done():
			return nil

		case base, ok := <-bases:
			if !ok {
				bases = nil
				if current == nil {
					return ErrNoController
				}
				continue
			}
			next, err := dialFeed(ctx, base)
			if err != nil {
				if current == nil {
					return err
				}
				continue
			}
			current.close()
			current = next

		case event := <-events:
			handle(event)

		case err := <-errs:
			current.close()
			current = nil
			if bases == nil {
				return fmt.Errorf("feed closed: %w", err)
			}
		}
	}
}

// Static yields base once, for following a controller at a fixed address.
func Static(base string) <-chan string {
	ch := make(chan string, 1)
	ch <- base
	close(ch)
	return ch
}

var feedTones = map[string]models.Tone{
	"snapshot": models.ToneInfo,
	"alerts":   models.ToneWarn,
	"health":   models.ToneGood,
}

// FormatFeedEvent prints one line per feed event.
func FormatFeedEvent(w io.Writer, event map[string]interface{}) {
	kind := getString(event, "type")
	fmt.Fprintf(w, "v%s  %s  %s\n", formatNumber(event["version"]), paint(feedTones[kind], kind), formatTime(event["timestamp"]))
}
