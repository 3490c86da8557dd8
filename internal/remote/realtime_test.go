package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// realtimeTestServer upgrades the realtime endpoint, captures the join
// frame, and pushes the given change frames to the client.
func realtimeTestServer(t *testing.T, push []phxMessage, joined chan phxMessage) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/realtime/v1/websocket") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("apikey") != "test-key" {
			http.Error(w, "missing apikey", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer func() { _ = conn.Close() }()

		var join phxMessage
		if err := conn.ReadJSON(&join); err != nil {
			t.Errorf("read join: %v", err)
			return
		}
		joined <- join

		reply := phxMessage{Topic: join.Topic, Event: "phx_reply", Payload: json.RawMessage(`{"status":"ok"}`), Ref: join.Ref}
		_ = conn.WriteJSON(reply)

		for _, msg := range push {
			_ = conn.WriteJSON(msg)
		}

		// Hold the connection until the client leaves or disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestSubscribeReceivesChanges(t *testing.T) {
	joined := make(chan phxMessage, 1)
	push := []phxMessage{
		{Topic: "realtime:public:todos", Event: "INSERT", Payload: json.RawMessage(`{"record":{"id":"1"}}`)},
		{Topic: "realtime:public:todos", Event: "heartbeat", Payload: json.RawMessage(`{}`)},
		{Topic: "realtime:public:todos", Event: "DELETE", Payload: json.RawMessage(`{"old_record":{"id":"1"}}`)},
	}
	srv := realtimeTestServer(t, push, joined)
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, AnonKey: "test-key"})

	events := make(chan ChangeEvent, 8)
	listener, err := client.Subscribe(context.Background(), "todos", func(ev ChangeEvent) {
		events <- ev
	})
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}
	defer func() { _ = listener.Close() }()

	select {
	case join := <-joined:
		if join.Topic != "realtime:public:todos" {
			t.Errorf("join topic = %q", join.Topic)
		}
		if join.Event != "phx_join" {
			t.Errorf("join event = %q", join.Event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw a join frame")
	}

	want := []string{"INSERT", "DELETE"}
	for _, kind := range want {
		select {
		case ev := <-events:
			if ev.Kind != kind {
				t.Errorf("event kind = %q, want %q", ev.Kind, kind)
			}
			if ev.Table != "todos" {
				t.Errorf("event table = %q", ev.Table)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}

	// The heartbeat bookkeeping frame must not surface as a change.
	select {
	case ev := <-events:
		t.Errorf("unexpected extra event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(Config{URL: srv.URL, AnonKey: "test-key"})
	_, err := client.Subscribe(context.Background(), "todos", func(ChangeEvent) {})
	if err == nil {
		t.Fatal("expected dial error against closed server")
	}
	if !strings.Contains(err.Error(), "realtime dial") {
		t.Errorf("error = %v, want realtime dial failure", err)
	}
}

func TestRealtimeURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		want    string
		wantErr bool
	}{
		{
			name: "https project url",
			base: "https://abc.supabase.co",
			want: "wss://abc.supabase.co/realtime/v1/websocket?apikey=k&vsn=1.0.0",
		},
		{
			name: "http for local development",
			base: "http://127.0.0.1:54321",
			want: "ws://127.0.0.1:54321/realtime/v1/websocket?apikey=k&vsn=1.0.0",
		},
		{
			name:    "unsupported scheme",
			base:    "ftp://example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := realtimeURL(tt.base, "k")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("realtimeURL() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("realtimeURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
