package ws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeConn struct {
	got    chan []byte
	fail   bool
	closed chan struct{}
}

func newFakeConn(fail bool) *fakeConn {
	return &fakeConn{got: make(chan []byte, 8), fail: fail, closed: make(chan struct{})}
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	f.got <- data
	return nil
}

func (f *fakeConn) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func TestPublishReachesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(nil)
	go h.Run(ctx)

	good, bad := newFakeConn(false), newFakeConn(true)
	h.Register <- good
	h.Register <- bad

	h.Publish(TypeToast, map[string]string{"level": "success", "message": "Stock updated"})

	select {
	case raw := <-good.got:
		var msg struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != TypeToast || msg.Data["message"] != "Stock updated" {
			t.Fatalf("message = %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	select {
	case <-bad.closed:
	case <-time.After(time.Second):
		t.Fatal("failing client was not closed")
	}
	if n := h.ClientCount(); n != 1 {
		t.Fatalf("clients = %d, want 1", n)
	}
}

func TestRunClosesClientsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := newFakeConn(false)
	h.Register <- c
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	select {
	case <-c.closed:
	default:
		t.Fatal("client left open")
	}
}
