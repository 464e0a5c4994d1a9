package notify

import (
	"testing"
	"time"
)

func TestCenter_PostAndActive(t *testing.T) {
	c := NewCenter(time.Minute)
	defer c.Close()

	c.Post("Success", "first", "success")
	c.Post("Error", "second", "error")

	active := c.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active notifications, got %d", len(active))
	}
	if active[0].Message != "first" || active[1].Message != "second" {
		t.Errorf("not ordered oldest first: %v", active)
	}
	if active[0].ID == "" || active[0].ID == active[1].ID {
		t.Error("entries must carry distinct ids")
	}
}

func TestCenter_EntriesExpire(t *testing.T) {
	c := NewCenter(20 * time.Millisecond)
	defer c.Close()

	c.Post("Success", "short lived", "success")
	if got := len(c.Active()); got != 1 {
		t.Fatalf("expected 1 active notification, got %d", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(c.Active()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("notification never expired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCenter_CloseDropsEverything(t *testing.T) {
	c := NewCenter(time.Minute)

	c.Post("Success", "gone soon", "success")
	c.Close()

	if got := len(c.Active()); got != 0 {
		t.Errorf("expected no notifications after Close, got %d", got)
	}
	// Posting after Close is a no-op, not a panic.
	c.Post("Success", "too late", "success")
	if got := len(c.Active()); got != 0 {
		t.Errorf("post after Close recorded an entry")
	}
}

func TestNewCenter_DefaultTTL(t *testing.T) {
	c := NewCenter(0)
	defer c.Close()
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}
