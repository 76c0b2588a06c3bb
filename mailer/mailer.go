package mailer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when neither SMTP credentials nor mock
// mode are set up. Callers surface this to the user instead of silently
// dropping the mail.
var ErrNotConfigured = errors.New("smtp is not configured")

// SendOTPEmail delivers a password-reset code. With EMAIL_MOCK=true the
// code is logged instead of sent, which keeps local development and the
// test suite independent of an SMTP server.
func SendOTPEmail(to, code string) error {
	subject := "Password Reset OTP - Online Voting System"
	body := otpEmailBody(code)
	return Send(to, subject, body)
}

// Send delivers a single HTML email via SMTP.
func Send(to, subject, htmlBody string) error {
	if os.Getenv("EMAIL_MOCK") == "true" {
		log.Printf("email mock mode: to=%s subject=%q", to, subject)
		return nil
	}

	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	if host == "" || user == "" {
		return ErrNotConfigured
	}

	port := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(host, port, user, pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("email sent to %s", to)
	return nil
}

func otpEmailBody(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1e3a8a;">Password Reset Request</h2>
  <p>You have requested to reset your password for the Online Voting System.</p>
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
    <h3 style="color: #1e3a8a; margin: 0;">Your OTP Code</h3>
    <h1 style="color: #d4af37; font-size: 32px; letter-spacing: 4px; margin: 10px 0;">%s</h1>
  </div>
  <p><strong>Important:</strong></p>
  <ul>
    <li>This OTP is valid for 10 minutes only</li>
    <li>Do not share this OTP with anyone</li>
    <li>If you didn't request this, please ignore this email</li>
  </ul>
  <p>Best regards,<br>Online Voting System Team</p>
</div>`, code)
}
