package providers

import (
	"fmt"
	"net/smtp"
	"strings"
)

const mimeBoundary = "lexwatch-report"

// SMTPConfig wires everything needed to reach the mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends mail via a plain-auth SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one multipart (plain + HTML) message.
func (s *SMTPSender) Send(to, subject, htmlBody, plainBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	msg := buildMessage(s.cfg.From, to, subject, htmlBody, plainBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody, plainBody string) string {
	var msg strings.Builder
	header := func(k, v string) { msg.WriteString(k + ": " + v + "\r\n") }

	header("From", from)
	header("To", to)
	header("Subject", subject)
	header("MIME-Version", "1.0")
	header("Content-Type", `multipart/alternative; boundary="`+mimeBoundary+`"`)
	msg.WriteString("\r\n")

	part := func(contentType, body string) {
		msg.WriteString("--" + mimeBoundary + "\r\n")
		header("Content-Type", contentType+`; charset="utf-8"`)
		msg.WriteString("\r\n" + body + "\r\n")
	}
	part("text/plain", plainBody)
	part("text/html", htmlBody)

	msg.WriteString("--" + mimeBoundary + "--\r\n")
	return msg.String()
}
