package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func waitClosed(t *testing.T, done chan struct{}, msg string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(msg)
	}
}

func TestHub_ReconnectSupersedesOldClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	userID := uuid.New()
	first := NewClient(hub, nil, userID, zap.NewNop())
	second := NewClient(hub, nil, userID, zap.NewNop())

	hub.register <- first
	hub.register <- second

	// Re-registering the same user shuts the superseded socket down.
	waitClosed(t, first.done, "old client not closed on reconnect")

	// The old socket's read pump unregisters on its way out; the fresh
	// connection must stay attached through that.
	hub.unregister <- first

	evt, err := NewEvent(EventTypePresence, PresencePayload{UserID: userID, Status: "online"})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	hub.SendToUser(userID, evt)

	select {
	case data := <-second.send:
		var got Event
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal delivered event: %v", err)
		}
		if got.Type != EventTypePresence {
			t.Errorf("delivered event type = %q, want presence", got.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("new client detached after stale unregister")
	}

	// Only the live client tears its own entry down.
	hub.unregister <- second
	waitClosed(t, second.done, "live client not closed on unregister")
}

func TestHub_UnregisterUnknownClientIsNoop(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	userID := uuid.New()
	connected := NewClient(hub, nil, userID, zap.NewNop())
	stray := NewClient(hub, nil, userID, zap.NewNop())

	hub.register <- connected
	hub.unregister <- stray

	evt, err := NewEvent(EventTypePong, nil)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	hub.SendToUser(userID, evt)

	select {
	case <-connected.send:
	case <-time.After(time.Second):
		t.Fatal("registered client lost its hub entry to a stray unregister")
	}
}
