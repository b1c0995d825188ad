package assistant

import (
	"context"
	"strings"
	"testing"

	"tingnect-api/internal/config"
)

func TestFactory(t *testing.T) {
	p, err := NewProvider(config.Config{AssistantProvider: "stub"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "stub" {
		t.Fatalf("got %q", p.Name())
	}

	p, err = NewProvider(config.Config{AssistantProvider: "openai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Fatalf("got %q", p.Name())
	}

	if _, err := NewProvider(config.Config{AssistantProvider: "clippy"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestStubEchoesAndKeepsThread(t *testing.T) {
	s := NewStub()
	a, err := s.Ask(context.Background(), Query{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Message != "You said: hello" {
		t.Fatalf("got %q", a.Message)
	}
	if !strings.HasPrefix(a.ThreadID, "stub-") {
		t.Fatalf("expected generated thread id, got %q", a.ThreadID)
	}

	b, err := s.Ask(context.Background(), Query{Message: "again", ThreadID: a.ThreadID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ThreadID != a.ThreadID {
		t.Fatal("existing thread id must be preserved")
	}
}
