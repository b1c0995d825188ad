// Package assistant abstracts the third-party assistant backing the site's
// chat widget.
package assistant

import (
	"context"
	"errors"
)

// ErrTimeout is returned when the assistant does not answer within the
// provider's polling budget.
var ErrTimeout = errors.New("assistant response timeout")

// ErrNoReply is returned when a run finishes without an assistant message.
var ErrNoReply = errors.New("assistant produced no reply")

// Query is one user turn. ThreadID empty means start a new conversation;
// AssistantID empty means use the provider's configured default.
type Query struct {
	ThreadID    string
	AssistantID string
	Message     string
}

// Answer carries the assistant's reply and the thread that produced it, so
// the caller can continue the conversation.
type Answer struct {
	Message  string
	ThreadID string
}

type Provider interface {
	Name() string
	Ask(ctx context.Context, q Query) (Answer, error)
}
