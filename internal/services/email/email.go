// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email delivers OTP codes via SMTP.
package email

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wneessen/go-mail"

	"codeberg.org/teamhub/qna/internal/config"
	"codeberg.org/teamhub/qna/internal/i18n"
)

// Mailer is the outbound delivery dependency of the auth service. Tests
// substitute a recording fake.
type Mailer interface {
	SendOtp(ctx context.Context, to, code string, expiryMinutes int) error
}

// Service sends email via SMTP using go-mail.
type Service struct {
	cfg *config.SMTPConfig
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{cfg: cfg}, nil
}

// SendOtp sends a login code to the given address.
func (s *Service) SendOtp(ctx context.Context, to, code string, expiryMinutes int) error {
	subject := i18n.T(ctx, "otp_email_subject")
	body := i18n.TData(ctx, "otp_email_body", map[string]any{
		"Code":          code,
		"ExpiryMinutes": strconv.Itoa(expiryMinutes),
	})

	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
