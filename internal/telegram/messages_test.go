package telegram

import (
	"context"
	"strings"
	"testing"

	"tingnect-api/internal/config"
	"tingnect-api/internal/models"
)

func TestBuildRegistrationMessage(t *testing.T) {
	reg := models.Registration{
		CardID:   "100",
		FullName: "Jane Doe",
		Phone:    "+84912345678",
		Email:    "jane@x.com",
	}
	msg := BuildRegistrationMessage(reg, 7, "sheet-123")

	for _, want := range []string{
		"*New TingNect Member*",
		"**Jane Doe** has joined!",
		"📧 jane@x.com",
		"Card ID: `100`",
		"📱 +84912345678",
		"https://docs.google.com/spreadsheets/d/sheet-123",
		"Row #7",
		"#TingNect #NewMember",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.HasPrefix(msg, "\n") || strings.HasSuffix(msg, "\n") {
		t.Error("message should be trimmed")
	}
}

func TestBuildContactMessage(t *testing.T) {
	req := models.ContactRequest{
		FullName:       "Bob",
		Email:          "bob@x.co",
		Company:        "Acme",
		TelegramHandle: "@bobby",
		InquiryType:    "partnership",
		Subject:        "Hello",
		Message:        "Let's talk.",
	}
	msg := BuildContactMessage(req)

	for _, want := range []string{
		"*New Contact Inquiry*",
		"🤝 Partnership & Collaboration",
		"👤 Bob",
		"📧 bob@x.co",
		"🏢 Acme",
		"💬 @bobby",
		"*Hello*",
		"Let's talk.",
		"#TingNect #Contact",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "📱") {
		t.Error("phone line should be omitted when empty")
	}
}

func TestFormatInquiryTypePassthrough(t *testing.T) {
	if got := FormatInquiryType("ufo"); got != "ufo" {
		t.Fatalf("got %q", got)
	}
}

func TestDisabledNotifier(t *testing.T) {
	n := New(config.Config{})
	if n.Enabled() {
		t.Fatal("notifier without credentials must be disabled")
	}
	if _, err := n.Notify(context.Background(), "hi"); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
