package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"btc-tracker-go/internal/config"
)

const defaultEmailTimeout = 10 * time.Second

// Email delivers events as plain-text SMTP messages.
type Email struct {
	host    string
	addr    string
	auth    smtp.Auth
	from    string
	to      []string
	timeout time.Duration
}

func NewEmail(cfg *config.Email) *Email {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultEmailTimeout
	}
	return &Email{
		host:    cfg.Host,
		addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:    smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from:    cfg.From,
		to:      strings.Split(cfg.To, ","),
		timeout: timeout,
	}
}

// Notify delivers the event over SMTP. The dial and the whole session are
// bounded by the context and the configured timeout; a stalling mail server
// must never wedge a sampling cycle.
func (e *Email) Notify(ctx context.Context, event Event) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", e.addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("failed to bound SMTP session: %w", err)
		}
	}

	if err := e.send(conn, event); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

// send runs one SMTP session over an already deadline-bounded connection.
func (e *Email) send(conn net.Conn, event Event) error {
	client, err := smtp.NewClient(conn, e.host)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: e.host}); err != nil {
			return err
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(e.auth); err != nil {
			return err
		}
	}

	if err := client.Mail(e.from); err != nil {
		return err
	}
	for _, rcpt := range e.to {
		if err := client.Rcpt(strings.TrimSpace(rcpt)); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		e.from, strings.Join(e.to, ", "), subject(event), body(event))
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
