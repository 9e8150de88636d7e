package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
	}

	// register client
	hub.register <- client

	// broadcast a test event
	data := []byte(`{"entity_type":"order","method":"placed","entity_id":"o1"}`)
	hub.Broadcast(data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// unbuffered Send, never drained
	slow := &Client{Send: make(chan []byte)}
	hub.register <- slow

	hub.Broadcast([]byte("one"))

	deadline := time.Now().Add(1 * time.Second)
	for {
		hub.mu.Lock()
		_, ok := hub.clients[slow]
		hub.mu.Unlock()
		if !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for slow client to be dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStoppedHubDoesNotBlockClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	client := &Client{Send: make(chan []byte, 1)}

	done := make(chan struct{})
	go func() {
		if hub.add(client) {
			t.Error("add should report failure after Stop")
		}
		hub.remove(client)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("add/remove blocked on a stopped hub")
	}
}
