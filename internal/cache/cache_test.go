package cache

import (
	"context"
	"testing"
)

func TestKeyIsStableAndModeSensitive(t *testing.T) {
	a := Key("college", "an attendance app")
	b := Key("college", "an attendance app")
	if a != b {
		t.Fatalf("key must be deterministic")
	}
	if Key("hackathon", "an attendance app") == a {
		t.Fatalf("mode must change the key")
	}
	if Key("college", "a different idea") == a {
		t.Fatalf("idea must change the key")
	}
}

func TestNilCacheIsAMiss(t *testing.T) {
	var c *Cache
	if _, ok := c.GetBlueprint(context.Background(), Key("college", "x")); ok {
		t.Fatalf("nil cache must miss")
	}
	if err := c.PutBlueprint(context.Background(), "k", []byte("{}")); err != nil {
		t.Fatalf("nil cache put must be a no-op, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache close must be a no-op")
	}
}
