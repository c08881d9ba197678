package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	sharedConfig "pulsefit/internal/shared/config"
)

// SMTPEmailService sends transactional mail for member lifecycle events.
type SMTPEmailService struct {
	config sharedConfig.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config sharedConfig.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendWelcomeEmail delivers the temporary password for a staff-provisioned
// account. The login flow forces a password change on first use.
func (s *SMTPEmailService) SendWelcomeEmail(to, name, tempPassword string) error {
	subject := "Welcome to PulseFit"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to PulseFit, %s!</h2>
			<p>An account has been created for you at the front desk.</p>
			<p>Your temporary password is: <strong>%s</strong></p>
			<p>You will be asked to choose a new password the first time you sign in.</p>
			<p>If you didn't expect this email, please contact the gym.</p>
		</body>
		</html>
	`, name, tempPassword)

	plainBody := fmt.Sprintf(`
Welcome to PulseFit, %s!

An account has been created for you at the front desk.

Your temporary password is: %s

You will be asked to choose a new password the first time you sign in.

If you didn't expect this email, please contact the gym.
	`, name, tempPassword)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// SendRenewalReminderEmail warns a member that the membership ends soon.
func (s *SMTPEmailService) SendRenewalReminderEmail(to, name, planName string, daysLeft int) error {
	subject := fmt.Sprintf("Your membership expires in %d day(s)", daysLeft)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>Your <strong>%s</strong> membership expires in %d day(s).</p>
			<p>Stop by the front desk or renew online to keep your access uninterrupted.</p>
			<p>See you at the gym!</p>
		</body>
		</html>
	`, name, planName, daysLeft)

	plainBody := fmt.Sprintf(`
Hi %s,

Your %s membership expires in %d day(s).

Stop by the front desk or renew online to keep your access uninterrupted.

See you at the gym!
	`, name, planName, daysLeft)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
