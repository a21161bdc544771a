package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/couchcryptid/windwatch/internal/config"
)

// EmailNotifier sends alerts over SMTP with STARTTLS, one message per
// recipient. Bodies carry a plain-text part plus a styled HTML alternative.
type EmailNotifier struct {
	host       string
	port       int
	username   string
	password   string
	sender     string
	recipients []string
	location   string
	websiteURL string
	logger     *slog.Logger
}

// NewEmailNotifier creates an email notifier from config.
func NewEmailNotifier(cfg *config.Config, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		username:   cfg.SMTPUsername,
		password:   cfg.SMTPPassword,
		sender:     cfg.SenderEmail,
		recipients: cfg.RecipientEmails,
		location:   cfg.Location,
		websiteURL: cfg.WebsiteURL,
		logger:     logger,
	}
}

// configured reports whether every required SMTP setting is present.
func (n *EmailNotifier) configured() bool {
	return n.host != "" && n.username != "" && n.password != "" && n.sender != "" && len(n.recipients) > 0
}

// Notify sends the alert to every recipient. A failure for one recipient
// is logged and does not prevent attempting the rest; the returned error
// reflects whether all deliveries succeeded.
func (n *EmailNotifier) Notify(ctx context.Context, alert Alert) error {
	if !n.configured() {
		n.logger.Error("email configuration is incomplete, notification not sent",
			"smtp_host", n.host,
			"smtp_username_set", n.username != "",
			"smtp_password_set", n.password != "",
			"sender", n.sender,
			"recipients", len(n.recipients),
		)
		return errors.New("email notifier not configured")
	}

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.username),
		mail.WithPassword(n.password),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	subject := subjectLine(alert)
	text := textMessage(alert, n.location, n.websiteURL)
	html := htmlMessage(alert, n.location, n.websiteURL)

	var failed int
	for _, recipient := range n.recipients {
		msg := mail.NewMsg()
		if err := msg.From(n.sender); err != nil {
			return fmt.Errorf("invalid sender address %q: %w", n.sender, err)
		}
		if err := msg.To(recipient); err != nil {
			n.logger.Error("invalid recipient address", "recipient", recipient, "error", err)
			failed++
			continue
		}
		msg.Subject(subject)
		msg.SetBodyString(mail.TypeTextPlain, text)
		msg.AddAlternativeString(mail.TypeTextHTML, html)

		if err := client.DialAndSendWithContext(ctx, msg); err != nil {
			n.logSendFailure(recipient, err)
			failed++
			continue
		}
		n.logger.Info("email notification sent", "recipient", recipient)
	}

	if failed > 0 {
		return fmt.Errorf("failed to deliver to %d of %d recipients", failed, len(n.recipients))
	}
	return nil
}

func (n *EmailNotifier) logSendFailure(recipient string, err error) {
	n.logger.Error("failed to send email notification", "recipient", recipient, "error", err)
	if strings.Contains(strings.ToLower(err.Error()), "auth") {
		n.logger.Error("this appears to be an authentication issue; " +
			"for Gmail use an App Password if 2FA is enabled, " +
			"for ProtonMail use the Bridge password with Bridge running")
	}
}
