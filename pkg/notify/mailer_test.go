package notify

import (
	"strings"
	"testing"
)

func testMailer() *Mailer {
	return NewMailer("smtp.example.com", 465, "user", "pass",
		"sentinel@example.com", []string{"ops@example.com", "oncall@example.com"})
}

func TestBuildPlainText(t *testing.T) {
	m := testMailer()

	msg, err := m.Build("Last Possible Report Missing", "directory /srv/reports is missing its report", nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	text := string(msg)
	for _, want := range []string{
		"From: sentinel@example.com\r\n",
		"To: ops@example.com, oncall@example.com\r\n",
		"Subject: Last Possible Report Missing\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"directory /srv/reports is missing its report",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q", want)
		}
	}

	if strings.Contains(text, "multipart") {
		t.Error("plain message should not be multipart")
	}
}

func TestBuildHeaderInjection(t *testing.T) {
	m := testMailer()

	msg, err := m.Build("subject\r\nBcc: evil@example.com", "body", nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if strings.Contains(string(msg), "Bcc: evil@example.com") {
		t.Error("CRLF in subject leaked into headers")
	}
}

func TestBuildWithAttachment(t *testing.T) {
	m := testMailer()

	msg, err := m.Build("subject", "see attached", []Attachment{
		{Filename: "09-03-2026.csv", ContentType: "text/csv", Data: []byte("a,b\n1,2\n")},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	text := string(msg)
	for _, want := range []string{
		"Content-Type: multipart/mixed; boundary=",
		"Content-Transfer-Encoding: base64",
		`attachment; filename="09-03-2026.csv"`,
		"see attached",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

// TestAttachmentsPerCall verifies attachments from one Send do not bleed
// into the next message.
func TestAttachmentsPerCall(t *testing.T) {
	m := testMailer()

	if _, err := m.Build("subject", "body", []Attachment{
		{Filename: "x.csv", ContentType: "text/csv", Data: []byte("x")},
	}); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	msg, err := m.Build("subject", "body", nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if strings.Contains(string(msg), "x.csv") {
		t.Error("attachment from previous call leaked into new message")
	}
}
