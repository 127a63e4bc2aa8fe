package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/pkg/logger"
)

// Sender is the outbound email transport the newsletter fan-out
// depends on. One call delivers to exactly one recipient; batching
// across recipients is the caller's concern so a rejected address
// cannot fail anyone else's delivery.
type Sender interface {
	// Send delivers a single HTML message and returns a message id.
	// The context deadline bounds the whole SMTP conversation.
	Send(ctx context.Context, from, to, subject, html string) (string, error)
}

type smtpSender struct {
	smtpAddr string
}

// NewSMTPSender returns a Sender backed by plain SMTP.
// Works against a local relay (mailpit/mailhog) in development; the
// production relay handles auth at the network boundary.
func NewSMTPSender(smtpHost, smtpPort string) Sender {
	return &smtpSender{
		smtpAddr: smtpHost + ":" + smtpPort,
	}
}

func (s *smtpSender) Send(ctx context.Context, from, to, subject, html string) (string, error) {
	// SMTP has no reply payload, so the Message-ID header doubles as
	// the dispatch id recorded per recipient.
	messageID := uuid.NewString()

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMessage-ID: <%s@inkwell>\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, messageID, html))

	if err := s.sendMail(ctx, from, to, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return messageID, nil
}

// sendMail runs the SMTP conversation over a connection whose deadline
// comes from ctx, so one stalled peer cannot hold a send past its
// per-recipient timeout. smtp.SendMail cannot take a context, hence
// the hand-dialed client.
func (s *smtpSender) sendMail(ctx context.Context, from, to string, msg []byte) error {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", s.smtpAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	} else {
		// Never let a caller without a deadline block forever.
		if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
			return err
		}
	}

	host, _, err := net.SplitHostPort(s.smtpAddr)
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

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
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
