package cache

import (
	"testing"
	"time"
)

func TestTTLCacheRoundTrip(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, ok, err := c.GetBytes("k")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(b) != "v" {
		t.Fatalf("unexpected value %q", b)
	}
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache()
	if _, ok, _ := c.GetBytes("absent"); ok {
		t.Fatalf("expected miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestGetJSONCorruptEntryIsMiss(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("{not json"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	type payload struct{ A int }
	v, ok, err := GetJSON[payload](c, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || v != nil {
		t.Fatalf("corrupt entry should read as miss")
	}
}

func TestSetGetJSON(t *testing.T) {
	c := NewTTLCache()
	type payload struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	in := payload{A: 7, B: "x"}
	if err := SetJSON(c, "k", &in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, ok, err := GetJSON[payload](c, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if *out != in {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
