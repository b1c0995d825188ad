package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Stub echoes queries back. Used in local development when no assistant is
// configured, and in handler tests.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Ask(_ context.Context, q Query) (Answer, error) {
	threadID := q.ThreadID
	if threadID == "" {
		threadID = "stub-" + uuid.NewString()
	}
	return Answer{
		Message:  fmt.Sprintf("You said: %s", q.Message),
		ThreadID: threadID,
	}, nil
}
