package cache

import (
	"testing"
	"time"
)

func TestCacheSetGetDelete(t *testing.T) {
	c := New[[]int](time.Minute, 0)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("a", []int{1, 2})
	got, ok := c.Get("a")
	if !ok || len(got) != 2 {
		t.Fatalf("expected hit, got %v ok=%v", got, ok)
	}
	if c.Size() != 1 {
		t.Fatalf("size = %d", c.Size())
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New[string](20*time.Millisecond, 0)
	c.Set("k", "v")
	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestCacheFlush(t *testing.T) {
	c := New[int](time.Minute, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()
	if c.Size() != 0 {
		t.Fatalf("size after flush = %d", c.Size())
	}
}
