package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeJSON, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeDuplicateKey, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeUnauthorized, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Errorf("code %d: got %d want %d", c.code, got, c.want)
		}
	}
}

func TestWrapPreservesCodeThroughChain(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := Wrap(cause, CodeUnavailable, "sheets append")
	wrapped := fmt.Errorf("pipeline: %w", err)

	if !IsCode(wrapped, CodeUnavailable) {
		t.Fatalf("expected CodeUnavailable, got %d", CodeOf(wrapped))
	}
	if HTTPStatus(wrapped) != http.StatusServiceUnavailable {
		t.Fatalf("got status %d", HTTPStatus(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("cause lost in wrapping")
	}
}

func TestMessageExcludesCause(t *testing.T) {
	err := Wrap(errors.New("boom"), CodeUnknown, "persist failed")
	e, ok := As(err)
	if !ok {
		t.Fatal("expected *Error")
	}
	if e.Message() != "persist failed" {
		t.Fatalf("got %q", e.Message())
	}
	if e.Error() != "persist failed: boom" {
		t.Fatalf("got %q", e.Error())
	}
}

func TestForeignErrorDefaultsToUnknown(t *testing.T) {
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatal("foreign errors must map to CodeUnknown")
	}
}
