package util

import (
	"strings"
	"testing"
)

func TestHMACSHA256Hex(t *testing.T) {
	a := HMACSHA256Hex("secret", "export:members")
	b := HMACSHA256Hex("secret", "export:members")
	if a != b {
		t.Fatalf("hmac not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if HMACSHA256Hex("other", "export:members") == a {
		t.Fatal("different secrets produced the same signature")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 50); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("x", 60)
	got := Truncate(long, 50)
	if got != strings.Repeat("x", 50)+"..." {
		t.Fatalf("got %q", got)
	}
}

func TestNowISO(t *testing.T) {
	if !strings.Contains(NowISO(), "T") {
		t.Fatal("expected RFC3339 timestamp")
	}
}
