// Package mailer sends the contact form notification e-mail. Sending
// is best-effort: the caller persists the message first and treats a
// failed send as a log line, never as a request failure.
package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// ContactData carries the submitted contact form fields into the
// notification e-mail.
type ContactData struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

// Mailer sends contact notifications. Implementations are fire-and-
// forget from the handler's point of view - an error return is logged
// by the caller, never propagated to the client.
type Mailer interface {
	SendContactNotification(data ContactData) error
}

// SMTPMailer implements Mailer over plain SMTP.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	adminAddr string
}

// NewSMTPMailer creates a mailer for the given SMTP account. All
// notifications go to adminAddr.
func NewSMTPMailer(host string, port int, user, password, adminAddr string) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(host, port, user, password),
		from:      user,
		adminAddr: adminAddr,
	}
}

// SendContactNotification sends one notification e-mail. No retries.
func (m *SMTPMailer) SendContactNotification(data ContactData) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "ESCOtech Website")
	msg.SetHeader("To", m.adminAddr)
	msg.SetHeader("Subject", fmt.Sprintf("New Contact Form Submission from %s", data.FullName))
	msg.SetBody("text/plain", textBody(data))
	msg.AddAlternative("text/html", htmlBody(data))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	return nil
}

func textBody(data ContactData) string {
	return fmt.Sprintf(`New Contact Form Submission

Name: %s
Email: %s
Phone: %s

Message:
%s
`, data.FullName, data.Email, data.Phone, data.Message)
}

func htmlBody(data ContactData) string {
	message := strings.ReplaceAll(html.EscapeString(data.Message), "\n", "<br>")
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p style="margin: 10px 0;"><strong>Name:</strong> %s</p>
    <p style="margin: 10px 0;"><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
    <p style="margin: 10px 0;"><strong>Phone:</strong> <a href="tel:%s">%s</a></p>
  </div>
  <div style="margin: 20px 0;">
    <h3 style="color: #333;">Message:</h3>
    <p style="background-color: #fff; padding: 15px; border-left: 4px solid #007bff; margin: 0;">%s</p>
  </div>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">This email was sent from the ESCOtech Ltd website contact form.</p>
</div>`,
		html.EscapeString(data.FullName),
		html.EscapeString(data.Email), html.EscapeString(data.Email),
		html.EscapeString(data.Phone), html.EscapeString(data.Phone),
		message,
	)
}
