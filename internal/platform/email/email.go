package email

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"nwfpay/internal/domain/payroll"
	"nwfpay/internal/platform/config"
)

type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, to, subject, body string, att *payroll.Attachment) error {
	return nil
}

type smtpMailer struct {
	cfg config.Config
}

// New returns the delivery collaborator: an SMTP mailer when email is
// enabled, otherwise a noop.
func New(cfg config.Config) payroll.Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

func (s *smtpMailer) Send(ctx context.Context, to, subject, body string, att *payroll.Attachment) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	msg, err := buildMessage(s.cfg.EmailFrom, to, subject, body, att)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.SMTPUseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
			return err
		}
	}
	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(s.cfg.EmailFrom); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// buildMessage assembles an RFC 2045 multipart message with an optional
// base64 attachment part.
func buildMessage(from, to, subject, body string, att *payroll.Attachment) ([]byte, error) {
	var sb strings.Builder
	writer := multipart.NewWriter(&sb)

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\n",
		from, to, subject)

	if att == nil {
		return []byte(headers +
			"Content-Type: text/plain; charset=utf-8\r\n\r\n" +
			body + "\r\n"), nil
	}

	headers += fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	attPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {att.ContentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.Filename)},
	})
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(att.Data)
	for len(encoded) > 0 {
		line := encoded
		if len(line) > 76 {
			line = line[:76]
		}
		if _, err := attPart.Write([]byte(line + "\r\n")); err != nil {
			return nil, err
		}
		encoded = encoded[len(line):]
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return []byte(headers + sb.String()), nil
}
