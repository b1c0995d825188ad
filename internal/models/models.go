package models

import "encoding/json"

// RegistrationRequest is the wire form of POST /api/member-register.
// Interests stays raw because the site has sent both arrays and junk here;
// anything that is not a string array collapses to an empty list.
type RegistrationRequest struct {
	CardID           string          `json:"cardID"`
	FullName         string          `json:"fullName"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	Telegram         string          `json:"telegram,omitempty"`
	Role             string          `json:"role,omitempty"`
	Experience       string          `json:"experience,omitempty"`
	Interests        json.RawMessage `json:"interests,omitempty"`
	Consent          bool            `json:"consent"`
	Timestamp        string          `json:"timestamp,omitempty"`
	UserAgent        string          `json:"userAgent,omitempty"`
	ConsentTimestamp string          `json:"consentTimestamp,omitempty"`
}

// Registration is a sanitized, accepted registration ready to persist.
type Registration struct {
	CardID           string
	FullName         string
	Phone            string
	Email            string
	Telegram         string
	Role             string
	Experience       string
	Interests        []string
	Consent          bool
	Timestamp        string
	UserAgent        string
	ConsentTimestamp string
}

// RegistrationResponse is the wire form of the registration endpoint's replies.
type RegistrationResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	CardID            string `json:"cardID,omitempty"`
	SheetRowNumber    int    `json:"sheetRowNumber,omitempty"`
	TelegramMessageID int    `json:"telegramMessageId,omitempty"`
}

// ContactRequest is the wire form of POST /api/contact.
type ContactRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Company        string `json:"company,omitempty"`
	Phone          string `json:"phone,omitempty"`
	TelegramHandle string `json:"telegramHandle,omitempty"`
	InquiryType    string `json:"inquiryType,omitempty"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
}

// ContactResponse is the wire form of the contact endpoint's replies.
// Failures use the error key, successes the message key; the site's
// frontend reads them that way.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChatRequest is the wire form of POST /api/chat.
type ChatRequest struct {
	Message     string `json:"message"`
	ThreadID    string `json:"threadId,omitempty"`
	AssistantID string `json:"assistantId,omitempty"`
}

// ChatResponse is the wire form of the chat endpoint's replies.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ThreadID string `json:"threadId,omitempty"`
	Error    string `json:"error,omitempty"`
}
