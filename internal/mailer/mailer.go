package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Sender delivers a notification email. Delivery is best effort: callers
// log a failed Send and carry on, it never fails the triggering request.
type Sender interface {
	Send(to, subject, body string) error
}

// New returns an SMTP sender, or a no-op one when no host is configured.
func New(host, port, username, password string) Sender {
	if host == "" {
		return NopSender{}
	}
	return &SMTPSender{host: host, port: port, username: username, password: password}
}

// NopSender discards every message.
type NopSender struct{}

func (NopSender) Send(to, subject, body string) error { return nil }

// SMTPSender delivers over implicit TLS (port 465 style) with AUTH PLAIN.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	from := s.username
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	conn, err := tls.Dial("tcp", s.host+":"+s.port, &tls.Config{ServerName: s.host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
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
		return err
	}
	return w.Close()
}
