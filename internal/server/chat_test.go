package server

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"tingnect-api/internal/assistant"
	"tingnect-api/internal/models"
)

type fakeProvider struct {
	name string
	err  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Ask(_ context.Context, q assistant.Query) (assistant.Answer, error) {
	if f.err != nil {
		return assistant.Answer{}, f.err
	}
	return assistant.Answer{Message: "ok", ThreadID: "t-1"}, nil
}

func TestChatStubRoundTrip(t *testing.T) {
	h := newTestServer(t, Deps{Store: &fakeStore{}})

	rec := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"hello"}`, "10.4.0.1")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.ChatResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Message != "You said: hello" {
		t.Fatalf("%+v", resp)
	}
	if !strings.HasPrefix(resp.ThreadID, "stub-") {
		t.Fatalf("thread id %q", resp.ThreadID)
	}
}

func TestChatKeepsThreadID(t *testing.T) {
	h := newTestServer(t, Deps{Store: &fakeStore{}})

	rec := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"again","threadId":"stub-abc"}`, "10.4.0.2")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	var resp models.ChatResponse
	decodeBody(t, rec, &resp)
	if resp.ThreadID != "stub-abc" {
		t.Fatalf("thread id %q", resp.ThreadID)
	}
}

func TestChatMessageRequired(t *testing.T) {
	h := newTestServer(t, Deps{Store: &fakeStore{}})

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":123}`, `garbage`} {
		rec := doJSON(t, h, http.MethodPost, "/api/chat", body, "10.4.0.3")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: got %d", body, rec.Code)
		}
		var resp models.ChatResponse
		decodeBody(t, rec, &resp)
		if resp.Error != "Message is required and must be a string" {
			t.Fatalf("body %q: error %q", body, resp.Error)
		}
	}
}

func TestChatOpenAIUnconfigured(t *testing.T) {
	// The openai provider is refused before any network call when the key
	// or assistant id is absent from the environment.
	h := newTestServer(t, Deps{Store: &fakeStore{}, Assistant: &fakeProvider{name: "openai"}})

	rec := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"hi"}`, "10.4.0.4")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rec.Code)
	}
	var resp models.ChatResponse
	decodeBody(t, rec, &resp)
	if resp.Error != "OpenAI API key not configured" {
		t.Fatalf("error %q", resp.Error)
	}
}

func TestChatProviderErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", assistant.ErrTimeout, "Response timeout. Please try again."},
		{"no reply", assistant.ErrNoReply, "No response generated"},
		{"other", errBoom, "Failed to process request with assistant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(t, Deps{Store: &fakeStore{}, Assistant: &fakeProvider{name: "stub", err: tc.err}})

			rec := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"hi"}`, "10.4.0.5")
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("got %d", rec.Code)
			}
			var resp models.ChatResponse
			decodeBody(t, rec, &resp)
			if resp.Error != tc.want {
				t.Fatalf("got %q want %q", resp.Error, tc.want)
			}
		})
	}
}

func TestChatStatus(t *testing.T) {
	h := newTestServer(t, Deps{Store: &fakeStore{}})

	rec := doJSON(t, h, http.MethodGet, "/api/chat", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["message"] != "Chat API is running. Use POST to send messages." {
		t.Fatalf("%v", resp)
	}
}
