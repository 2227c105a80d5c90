// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers transactional e-mail (OTP codes, password recovery).

Two [Sender] implementations exist:

  - SMTPSender: SMTP relay delivery through go-mail, STARTTLS when offered.
  - LogSender: writes the message to the structured log, used when no SMTP
    host is configured.

Delivery is always best-effort from the caller's point of view. Services log
a failed send and continue with the primary operation.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Message is a single plain-text e-mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message].
type Sender interface {
	Send(context context.Context, message Message) error
}

// # SMTP

// SMTPConfig holds the connection settings for [SMTPSender].
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// Timeout bounds each network operation of the exchange.
	Timeout time.Duration
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	from    string
	deliver func(context context.Context, messages ...*gomail.Msg) error
}

/*
NewSMTPSender builds a sender for the given relay.

Description: STARTTLS is used when the relay offers it. PLAIN auth is
enabled only when a username is configured. No connection is opened here.

Returns:
  - *SMTPSender: Ready sender
  - error: Invalid host or option values
*/
func NewSMTPSender(config SMTPConfig) (*SMTPSender, error) {
	options := []gomail.Option{
		gomail.WithPort(config.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if config.Timeout > 0 {
		options = append(options, gomail.WithTimeout(config.Timeout))
	}
	if config.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(config.Username),
			gomail.WithPassword(config.Password),
		)
	}

	client, err := gomail.NewClient(config.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mail: configure smtp client: %w", err)
	}

	return &SMTPSender{from: config.From, deliver: client.DialAndSendWithContext}, nil
}

// Send dials the relay and delivers message. It returns once the exchange
// has finished or the context has ended it.
func (sender *SMTPSender) Send(context context.Context, message Message) error {
	msg, err := compose(sender.from, message)
	if err != nil {
		return err
	}

	if err := sender.deliver(context, msg); err != nil {
		return fmt.Errorf("mail: smtp send to %s failed: %w", message.To, err)
	}
	return nil
}

// compose builds the MIME message. Non-ASCII headers are encoded.
func compose(from string, message Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("mail: invalid sender %q: %w", from, err)
	}
	if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("mail: invalid recipient %q: %w", message.To, err)
	}

	msg.Subject(message.Subject)
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextPlain, message.Body)
	return msg, nil
}

// # Log

// LogSender records messages in the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender builds a sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (sender *LogSender) Send(context context.Context, message Message) error {
	sender.logger.InfoContext(context, "mail_logged",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
