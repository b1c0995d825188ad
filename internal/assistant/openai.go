package assistant

import (
	"context"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	pollInterval = time.Second
	maxPolls     = 30
)

// OpenAI runs queries through the OpenAI assistants API: ensure a thread,
// add the user message, start a run and poll it to completion.
type OpenAI struct {
	client      *goopenai.Client
	assistantID string

	sleep func(time.Duration) // test seam
}

func NewOpenAI(apiKey, assistantID string) *OpenAI {
	return &OpenAI{
		client:      goopenai.NewClient(apiKey),
		assistantID: assistantID,
		sleep:       time.Sleep,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Ask(ctx context.Context, q Query) (Answer, error) {
	assistantID := q.AssistantID
	if assistantID == "" {
		assistantID = o.assistantID
	}

	threadID := q.ThreadID
	if threadID == "" {
		thread, err := o.client.CreateThread(ctx, goopenai.ThreadRequest{})
		if err != nil {
			return Answer{}, err
		}
		threadID = thread.ID
	}

	if _, err := o.client.CreateMessage(ctx, threadID, goopenai.MessageRequest{
		Role:    goopenai.ChatMessageRoleUser,
		Content: q.Message,
	}); err != nil {
		return Answer{}, err
	}

	run, err := o.client.CreateRun(ctx, threadID, goopenai.RunRequest{AssistantID: assistantID})
	if err != nil {
		return Answer{}, err
	}

	for attempts := 0; run.Status == goopenai.RunStatusQueued || run.Status == goopenai.RunStatusInProgress; attempts++ {
		if attempts >= maxPolls {
			return Answer{}, ErrTimeout
		}
		o.sleep(pollInterval)
		run, err = o.client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return Answer{}, err
		}
	}
	if run.Status != goopenai.RunStatusCompleted {
		return Answer{}, ErrNoReply
	}

	limit := 1
	order := "desc"
	msgs, err := o.client.ListMessage(ctx, threadID, &limit, &order, nil, nil)
	if err != nil {
		return Answer{}, err
	}
	if len(msgs.Messages) == 0 {
		return Answer{}, ErrNoReply
	}
	last := msgs.Messages[0]
	if last.Role != goopenai.ChatMessageRoleAssistant || len(last.Content) == 0 || last.Content[0].Text == nil {
		return Answer{}, ErrNoReply
	}

	return Answer{Message: last.Content[0].Text.Value, ThreadID: threadID}, nil
}
