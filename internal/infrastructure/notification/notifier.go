package notification

import (
	"context"
	"errors"
	"fmt"

	"pulsefit/internal/shared/logger"
)

// EmailSender is the mail channel used for lifecycle notifications.
type EmailSender interface {
	SendWelcomeEmail(to, name, tempPassword string) error
	SendRenewalReminderEmail(to, name, planName string, daysLeft int) error
}

// SMSSender is the text-message channel. Enabled reports whether a gateway
// is configured; Send fails when it is not.
type SMSSender interface {
	Enabled() bool
	Send(ctx context.Context, phone, message string) error
}

// Notifier fans lifecycle notifications out over email and SMS.
type Notifier struct {
	email  EmailSender
	sms    SMSSender
	logger logger.Interface
}

func NewNotifier(email EmailSender, smsSender SMSSender, logger logger.Interface) *Notifier {
	return &Notifier{
		email:  email,
		sms:    smsSender,
		logger: logger,
	}
}

// SendRenewalReminder notifies a member over every channel with a known
// address. It succeeds when at least one channel delivered, so a broken SMS
// gateway does not silence members reachable by mail.
func (n *Notifier) SendRenewalReminder(ctx context.Context, name, email, phone, planName string, daysLeft int) error {
	var attempted, delivered int
	var errs []error

	if email != "" {
		attempted++
		if err := n.email.SendRenewalReminderEmail(email, name, planName, daysLeft); err != nil {
			n.logger.Warnw("renewal reminder email failed", "to", email, "error", err)
			errs = append(errs, err)
		} else {
			delivered++
		}
	}

	if phone != "" && n.sms.Enabled() {
		attempted++
		msg := fmt.Sprintf("Hi %s, your %s membership expires in %d day(s). Renew at the front desk or online.", name, planName, daysLeft)
		if err := n.sms.Send(ctx, phone, msg); err != nil {
			n.logger.Warnw("renewal reminder sms failed", "to", phone, "error", err)
			errs = append(errs, err)
		} else {
			delivered++
		}
	}

	if attempted == 0 {
		return errors.New("member has no reachable contact channel")
	}
	if delivered == 0 {
		return fmt.Errorf("all notification channels failed: %w", errors.Join(errs...))
	}
	return nil
}

// SendWelcome delivers the temporary credentials. Email only: a password over
// SMS would outlive the forced change on first login.
func (n *Notifier) SendWelcome(ctx context.Context, name, email, tempPassword string) error {
	if email == "" {
		return errors.New("member has no email address")
	}
	if err := n.email.SendWelcomeEmail(email, name, tempPassword); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
