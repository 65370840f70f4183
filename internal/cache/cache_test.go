package cache

import (
	"testing"
	"time"
)

func TestCacheExpiry(t *testing.T) {
	c := New()

	c.Set("k", "v", 50*time.Millisecond)
	if got := c.Get("k"); got != "v" {
		t.Fatalf("Get = %v, want v", got)
	}

	c.Set("expired", "v", -time.Second)
	if got := c.Get("expired"); got != nil {
		t.Errorf("expired entry = %v, want nil", got)
	}

	if got := c.Get("missing"); got != nil {
		t.Errorf("missing entry = %v, want nil", got)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New()
	c.SetStatic("a", 1)
	c.SetSlow("b", 2)

	c.Delete("a")
	if c.Get("a") != nil {
		t.Error("deleted entry still present")
	}
	if c.Get("b") == nil {
		t.Error("unrelated entry lost")
	}

	c.Clear()
	if c.Get("b") != nil {
		t.Error("cleared entry still present")
	}
}
