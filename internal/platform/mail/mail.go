// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers transactional e-mail (password reset links).

Two [Sender] implementations exist:

  - [SMTPSender]: real delivery through 'wneessen/go-mail'.
  - [LogSender]: writes the message to the structured log; used when no SMTP
    host is configured so local development still surfaces the link.
*/
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const sendTimeout = 30 * time.Second

// ErrNoRecipient is returned when a message has no To address.
var ErrNoRecipient = errors.New("mail: message requires a recipient")

// Message is a single outgoing e-mail. HTML is optional; Text is always sent.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a [Message].
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the connection settings for [NewSMTPSender].
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      bool
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	from   string
	client *gomail.Client
}

// NewSMTPSender builds a client for cfg. No connection is opened until Send.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(sendTimeout),
		gomail.WithTLSConfig(&tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}),
	}

	// Authenticate only when credentials are configured (local relays often need none)
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	if cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to create client: %w", err)
	}

	return &SMTPSender{from: cfg.From, client: client}, nil
}

// Send implements [Sender].
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("mail: invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mail: invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mail: send failed: %w", err)
	}
	return nil
}

// LogSender records that a message would have been sent. The body is never
// logged since it may carry a live reset token. Development only.
type LogSender struct {
	Logger *slog.Logger
}

// Send implements [Sender].
func (s LogSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "mail_not_sent_smtp_disabled",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
