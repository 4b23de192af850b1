package service

import (
	"fmt"

	"expensetracker/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends outgoing mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendWelcomeEmail greets a freshly registered user.
func (s *EmailService) SendWelcomeEmail(toEmail, username string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true")
	}
	subject := "Welcome to Expense Tracker"
	return s.sendEmail(toEmail, subject, s.welcomeBody(username))
}

func (s *EmailService) welcomeBody(username string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden;">
    <div style="background: #2563eb; color: white; padding: 30px; text-align: center;">
      <h1 style="margin: 0;">Expense Tracker</h1>
    </div>
    <div style="padding: 40px 30px; color: #333; line-height: 1.8;">
      <p>Hi <strong>%s</strong>,</p>
      <p>Your account is ready. Set a monthly budget, record your expenses and
      keep an eye on where the money goes.</p>
    </div>
    <div style="background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px;">
      <p>This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>
`, username)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
