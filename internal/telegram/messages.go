package telegram

import (
	"fmt"
	"strings"

	"tingnect-api/internal/models"
)

var inquiryDisplay = map[string]string{
	"partnership": "🤝 Partnership & Collaboration",
	"development": "💻 Development & Technical",
	"investment":  "💰 Investment Opportunities",
	"community":   "👥 Community & Events",
	"technical":   "🛠️ Technical Support",
	"media":       "📰 Media & Press",
	"other":       "📋 Other Inquiries",
}

// FormatInquiryType returns the display form of a known inquiry type, or the
// raw value unchanged.
func FormatInquiryType(t string) string {
	if d, ok := inquiryDisplay[t]; ok {
		return d
	}
	return t
}

// BuildRegistrationMessage renders the member-joined announcement, linking
// back to the persisted sheet row.
func BuildRegistrationMessage(reg models.Registration, rowNumber int, sheetID string) string {
	return strings.TrimSpace(fmt.Sprintf(`
🎉 *New TingNect Member*

**%s** has joined!
📧 %s
💳 Card ID: `+"`%s`"+`
📱 %s

[View Details](https://docs.google.com/spreadsheets/d/%s) • Row #%d

#TingNect #NewMember
`, reg.FullName, reg.Email, reg.CardID, reg.Phone, sheetID, rowNumber))
}

// BuildContactMessage renders a contact-form inquiry for the team channel.
func BuildContactMessage(req models.ContactRequest) string {
	var b strings.Builder
	b.WriteString("📬 *New Contact Inquiry*\n\n")
	if req.InquiryType != "" {
		b.WriteString(FormatInquiryType(req.InquiryType) + "\n")
	}
	fmt.Fprintf(&b, "👤 %s\n📧 %s\n", req.FullName, req.Email)
	if req.Company != "" {
		fmt.Fprintf(&b, "🏢 %s\n", req.Company)
	}
	if req.Phone != "" {
		fmt.Fprintf(&b, "📱 %s\n", req.Phone)
	}
	if req.TelegramHandle != "" {
		fmt.Fprintf(&b, "💬 %s\n", req.TelegramHandle)
	}
	fmt.Fprintf(&b, "\n*%s*\n%s\n\n#TingNect #Contact", req.Subject, req.Message)
	return b.String()
}
