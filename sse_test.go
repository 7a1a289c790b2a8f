package main

import (
	"sync"
	"testing"
	"time"
)

func TestBroadcasterRegisterUnregister(t *testing.T) {
	b := NewBroadcaster()

	c1 := b.Register("s1")
	c2 := b.Register("s1")
	c3 := b.Register("s2")

	if b.ClientCount("s1") != 2 {
		t.Fatalf("expected 2 clients for s1, got %d", b.ClientCount("s1"))
	}
	if b.ClientCount("s2") != 1 {
		t.Fatalf("expected 1 client for s2, got %d", b.ClientCount("s2"))
	}

	b.Unregister(c1)
	if b.ClientCount("s1") != 1 {
		t.Fatalf("expected 1 client for s1 after unregister, got %d", b.ClientCount("s1"))
	}

	b.Unregister(c2)
	b.Unregister(c3)
	if b.ClientCount("s1") != 0 || b.ClientCount("s2") != 0 {
		t.Fatal("expected 0 clients after full unregister")
	}
}

func TestBroadcasterDoubleUnregister(t *testing.T) {
	b := NewBroadcaster()
	c := b.Register("s1")
	b.Unregister(c)
	b.Unregister(c) // should not panic
}

func TestBroadcast(t *testing.T) {
	b := NewBroadcaster()

	c1 := b.Register("s1")
	c2 := b.Register("s1")
	c3 := b.Register("s2")

	if err := b.Broadcast("s1", "level_started", map[string]int{"level_id": 3}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	for name, c := range map[string]*client{"c1": c1, "c2": c2} {
		select {
		case msg := <-c.ch:
			if msg.event != "level_started" || string(msg.data) != `{"level_id":3}` {
				t.Fatalf("%s got unexpected message %s %s", name, msg.event, msg.data)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("%s did not receive message", name)
		}
	}

	// c3 is on s2, should not receive.
	select {
	case <-c3.ch:
		t.Fatal("c3 should not receive s1 message")
	case <-time.After(50 * time.Millisecond):
	}

	b.Unregister(c1)
	b.Unregister(c2)
	b.Unregister(c3)
}

func TestBroadcastEncodeError(t *testing.T) {
	b := NewBroadcaster()
	if err := b.Broadcast("s1", "state", make(chan int)); err == nil {
		t.Fatal("expected an encoding error")
	}
}

func TestBroadcastSkipsFullChannel(t *testing.T) {
	b := NewBroadcaster()
	c := b.Register("s1")

	for range sseChannelBuffer {
		b.Broadcast("s1", "state", "fill")
	}

	// This should not block.
	b.Broadcast("s1", "state", "overflow")

	b.Unregister(c)
}

func TestCloseSession(t *testing.T) {
	b := NewBroadcaster()
	c1 := b.Register("s1")
	c2 := b.Register("s2")

	b.CloseSession("s1")
	if _, ok := <-c1.ch; ok {
		t.Fatal("expected c1 channel to be closed")
	}
	if b.ClientCount("s1") != 0 || b.ClientCount("s2") != 1 {
		t.Fatal("only s1 clients should be dropped")
	}
	// Unregistering a client already closed by its session is a no-op.
	b.Unregister(c1)
	b.Unregister(c2)
}

func TestBroadcasterConcurrent(t *testing.T) {
	b := NewBroadcaster()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessionID := "s1"
			if i%2 == 0 {
				sessionID = "s2"
			}
			c := b.Register(sessionID)
			b.Broadcast(sessionID, "state", "msg")
			b.ClientCount(sessionID)
			b.Unregister(c)
		}(i)
	}
	wg.Wait()

	if b.ClientCount("s1") != 0 || b.ClientCount("s2") != 0 {
		t.Fatal("expected 0 clients after concurrent test")
	}
}
