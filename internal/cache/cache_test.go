package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetBeforeAndAfterExpiry(t *testing.T) {
	c := New[string](0)
	c.Set("k", "v", 50*time.Millisecond)

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("immediate Get = %q, %v; want %q, true", got, ok, "v")
	}

	time.Sleep(60 * time.Millisecond)
	if got, ok := c.Get("k"); ok {
		t.Errorf("Get after expiry = %q, true; want absent", got)
	}
	if n := c.Len(); n != 0 {
		t.Errorf("expired entry not removed on Get, Len = %d", n)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := New[int](0)
	if got, ok := c.Get("nope"); ok {
		t.Errorf("Get on empty cache = %d, true; want absent", got)
	}
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	c := New[int](2)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Set("c", 3, time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("earliest-inserted key survived eviction")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v; want 3, true", v, ok)
	}
	if n := c.Len(); n != 2 {
		t.Errorf("Len = %d, want 2", n)
	}
}

func TestReadRefreshesEvictionOrder(t *testing.T) {
	c := New[int](2)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Get("a") // a is now the most recently used
	c.Set("c", 3, time.Minute)

	if _, ok := c.Get("a"); !ok {
		t.Error("recently read key was evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used key survived")
	}
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c := New[int](2)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Set("a", 10, time.Minute) // existing key, no eviction

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", v, ok)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("overwrite of existing key evicted a sibling")
	}
}

func TestSweepRemovesExpiredOnInsert(t *testing.T) {
	c := New[int](0)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("short-%d", i), i, 10*time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	// Inserting a new key sweeps the five expired one-shot keys.
	c.Set("fresh", 99, time.Minute)
	if n := c.Len(); n != 1 {
		t.Errorf("Len after sweep = %d, want 1", n)
	}
	if v, ok := c.Get("fresh"); !ok || v != 99 {
		t.Errorf("Get(fresh) = %d, %v; want 99, true", v, ok)
	}
}

func TestPerCallTTLPolicy(t *testing.T) {
	c := New[string](0)
	c.Set("past", "immutable", time.Hour)
	c.Set("live", "volatile", 20*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("live"); ok {
		t.Error("short-TTL entry survived past its expiry")
	}
	if _, ok := c.Get("past"); !ok {
		t.Error("long-TTL entry expired with the short one")
	}
}
