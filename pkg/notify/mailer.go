package notify

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
)

// Attachment is a file attached to an alert email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer sends alert emails over an implicit-TLS SMTP session.
type Mailer struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Sender     string
	Recipients []string
}

// NewMailer returns a Mailer for the given server and identity.
func NewMailer(host string, port int, username, password, sender string, recipients []string) *Mailer {
	return &Mailer{
		Host:       host,
		Port:       port,
		Username:   username,
		Password:   password,
		Sender:     sender,
		Recipients: recipients,
	}
}

// Send delivers one email to all configured recipients. Attachments are
// variadic, so each call gets its own fresh slice. Errors are returned to
// the caller rather than handled here; the orchestrator's top-level handler
// is the only recovery point for a failed send.
func (m *Mailer) Send(subject, body string, attachments ...Attachment) error {
	msg, err := m.Build(subject, body, attachments)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(m.Sender); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range m.Recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s rejected: %w", rcpt, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// Build constructs the raw RFC 822 message. Exposed so message construction
// can be tested without a network.
func (m *Mailer) Build(subject, body string, attachments []Attachment) ([]byte, error) {
	if len(attachments) > 0 {
		return m.buildMultipart(subject, body, attachments)
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", m.Sender))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(m.Recipients, ", ")))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

func (m *Mailer) buildMultipart(subject, body string, attachments []Attachment) ([]byte, error) {
	var parts bytes.Buffer
	writer := multipart.NewWriter(&parts)

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.Sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(m.Recipients, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n", writer.Boundary()))
	msg.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	for _, att := range attachments {
		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", att.ContentType)
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))

		attPart, err := writer.CreatePart(attHeader)
		if err != nil {
			return nil, err
		}

		encoded := base64.StdEncoding.EncodeToString(att.Data)
		// 76-character lines per RFC 2045
		for i := 0; i < len(encoded); i += 76 {
			end := i + 76
			if end > len(encoded) {
				end = len(encoded)
			}
			if _, err := attPart.Write([]byte(encoded[i:end] + "\r\n")); err != nil {
				return nil, err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	msg.Write(parts.Bytes())
	return msg.Bytes(), nil
}

// sanitizeHeader strips CR/LF to prevent header injection.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
