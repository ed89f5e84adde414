package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewLRU[int](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("hit on empty cache")
	}

	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("Get(a) = %d, %v, want 1, true", got, ok)
	}

	c.Set("a", 2)
	got, _ = c.Get("a")
	if got != 2 {
		t.Fatalf("Get(a) after overwrite = %d, want 2", got)
	}
	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after overwrite", c.Size())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRU[int](4, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry still served")
	}
	if c.Size() != 0 {
		t.Fatalf("Size() = %d, want 0 after expiry read", c.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("newest entry evicted")
	}
}

func TestDelete(t *testing.T) {
	c := NewLRU[int](4, time.Minute)

	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted entry still served")
	}

	// Deleting a missing key is a no-op
	c.Delete("missing")
}
