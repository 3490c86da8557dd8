package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/daybrief/daybrief/internal/logging"
)

const (
	heartbeatInterval = 25 * time.Second
	realtimeVersion   = "1.0.0"
)

// ChangeEvent describes one row-change notification. The repository only
// needs the fact that something changed; the row content is not carried.
type ChangeEvent struct {
	Kind  string // INSERT, UPDATE or DELETE
	Table string
}

// phxMessage is a Phoenix-channel frame, the framing Supabase realtime
// speaks.
type phxMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

// Listener is a cancellable realtime subscription. Create it with
// Subscribe, stop it with Close. It does not reconnect on its own; callers
// that want resilience restart a fresh listener.
type Listener struct {
	conn   *websocket.Conn
	topic  string
	cancel context.CancelFunc
	done   chan struct{}
	log    zerolog.Logger
}

// Subscribe opens a websocket to the project's realtime endpoint, joins
// the change-feed topic for table, and invokes onChange for every
// INSERT/UPDATE/DELETE event until the listener is closed.
func (c *Client) Subscribe(ctx context.Context, table string, onChange func(ChangeEvent)) (*Listener, error) {
	wsURL, err := realtimeURL(c.baseURL, c.anonKey)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: realtime dial: %v", ErrUnreachable, err)
	}

	topic := "realtime:public:" + table
	join := phxMessage{Topic: topic, Event: "phx_join", Payload: json.RawMessage(`{}`), Ref: "1"}
	if err := conn.WriteJSON(join); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: join %s: %v", ErrUnreachable, topic, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	l := &Listener{
		conn:   conn,
		topic:  topic,
		cancel: cancel,
		done:   make(chan struct{}),
		log:    logging.Component("realtime"),
	}

	go l.heartbeat(runCtx)
	go l.readLoop(runCtx, table, onChange)

	l.log.Info().Str("topic", topic).Msg("realtime subscription established")
	return l, nil
}

// Close tears the subscription down and waits for the read loop to exit.
func (l *Listener) Close() error {
	l.cancel()
	leave := phxMessage{Topic: l.topic, Event: "phx_leave", Payload: json.RawMessage(`{}`), Ref: "2"}
	_ = l.conn.WriteJSON(leave)
	err := l.conn.Close()
	<-l.done
	return err
}

func (l *Listener) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 10
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ref++
			msg := phxMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
				Ref:     fmt.Sprintf("%d", ref),
			}
			if err := l.conn.WriteJSON(msg); err != nil {
				l.log.Warn().Err(err).Msg("realtime heartbeat failed")
				return
			}
		}
	}
}

func (l *Listener) readLoop(ctx context.Context, table string, onChange func(ChangeEvent)) {
	defer close(l.done)

	for {
		var msg phxMessage
		if err := l.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				l.log.Warn().Err(err).Msg("realtime connection lost")
			}
			return
		}

		switch msg.Event {
		case "INSERT", "UPDATE", "DELETE":
			l.log.Debug().Str("kind", msg.Event).Msg("realtime change received")
			onChange(ChangeEvent{Kind: msg.Event, Table: table})
		case "phx_reply", "phx_close", "heartbeat":
			// channel bookkeeping, nothing to do
		}
	}
}

// realtimeURL derives the websocket endpoint from the project's REST base
// URL.
func realtimeURL(baseURL, anonKey string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q in base url", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/realtime/v1/websocket"
	q := u.Query()
	q.Set("apikey", anonKey)
	q.Set("vsn", realtimeVersion)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
