// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends the transactional mails around service-request
// intake through the Resend API. Sends are retried with exponential
// backoff and a capped attempt count; exhaustion surfaces as an error the
// caller logs and tolerates.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/sethvargo/go-retry"

	"hostwise/internal/models"
)

const (
	// defaultBaseDelay is the first retry delay; it doubles per attempt.
	defaultBaseDelay = time.Second

	// sendTimeout bounds a single send including its retries.
	sendTimeout = 30 * time.Second
)

// Sender is the part of the Resend client the mailer uses. Tests provide
// a fake implementation.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client sends admin notifications and client confirmations.
type Client struct {
	sender      Sender
	from        string
	adminEmail  string
	maxAttempts uint64
	baseDelay   time.Duration
}

// New creates a mailer backed by the Resend API. Returns nil if apiKey or
// adminEmail are empty, letting the app run with notifications disabled.
func New(apiKey, from, adminEmail string, maxAttempts int) *Client {
	if apiKey == "" || adminEmail == "" {
		return nil
	}
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &Client{
		sender:      resend.NewClient(apiKey).Emails,
		from:        from,
		adminEmail:  adminEmail,
		maxAttempts: uint64(maxAttempts),
		baseDelay:   defaultBaseDelay,
	}
}

// SendAdminNotification mails the backoffice about a new request.
func (c *Client) SendAdminNotification(ctx context.Context, req *models.ServiceRequest) error {
	html, err := renderAdminNotification(req)
	if err != nil {
		return fmt.Errorf("render admin notification: %w", err)
	}
	subject := fmt.Sprintf("[Hostwise] New consulting request from %s", req.CompanyName)
	return c.send(ctx, c.adminEmail, subject, html)
}

// SendClientConfirmation mails the submitter a receipt.
func (c *Client) SendClientConfirmation(ctx context.Context, req *models.ServiceRequest) error {
	html, err := renderClientConfirmation(req)
	if err != nil {
		return fmt.Errorf("render client confirmation: %w", err)
	}
	return c.send(ctx, req.ContactEmail, "We received your consulting request", html)
}

// send delivers one mail with exponential backoff. Every failure is
// retryable up to the attempt cap; the send is bounded by sendTimeout.
func (c *Client) send(parent context.Context, to, subject, html string) error {
	ctx, cancel := context.WithTimeout(parent, sendTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(c.maxAttempts-1, retry.NewExponential(c.baseDelay))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		_, err := c.sender.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    c.from,
			To:      []string{to},
			Subject: subject,
			Html:    html,
		})
		if err != nil {
			slog.Warn("email send attempt failed",
				"to", to,
				"attempt", attempt,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("send email to %s after %d attempts: %w", to, attempt, err)
	}
	return nil
}
