package services

import (
	"fmt"
	"log"

	"helpdesk_app_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an outbound email message
type Email struct {
	To       []string
	From     string // optional "Name <address>" override; config default when empty
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using the Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("Email logged successfully (test mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := email.From
	if fromAddress == "" {
		fromAddress = fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)
	}

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine so handlers never block on
// the mail provider. Failures are logged, not surfaced.
func SendEmailAsync(cfg *config.Config, email *Email) {
	go func() {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[WARNING] Async email to %v failed: %v", email.To, err)
		}
	}()
}

func logEmailToConsole(email *Email) {
	log.Println("========== EMAIL (test mode) ==========")
	log.Printf("To:      %v", email.To)
	if email.From != "" {
		log.Printf("From:    %s", email.From)
	}
	log.Printf("Subject: %s", email.Subject)
	if email.TextBody != "" {
		log.Printf("Body:\n%s", email.TextBody)
	}
	log.Println("=======================================")
}

// BuildWelcomeEmail builds the invite email for a newly provisioned agent.
// The setup link carries the invite token that lets them choose their
// password.
func BuildWelcomeEmail(toEmail, name, setupLink string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "Welcome to HelpDesk Pro",
		HTMLBody: fmt.Sprintf(`<p>Hi %s,</p>
<p>An administrator created a HelpDesk Pro agent account for you.</p>
<p>Choose your password at <a href="%s">%s</a>. The link is valid for 72 hours; after that, use "Forgot password" on the login page to request a new one.</p>
<p>— HelpDesk Pro</p>`, name, setupLink, setupLink),
		TextBody: fmt.Sprintf(`Hi %s,

An administrator created a HelpDesk Pro agent account for you.

Choose your password at %s. The link is valid for 72 hours; after that, use "Forgot password" on the login page to request a new one.

— HelpDesk Pro
`, name, setupLink),
	}
}

// BuildPasswordResetEmail builds the forgot-password email with the reset
// link and its expiry
func BuildPasswordResetEmail(toEmail, name, resetLink, expiresAt string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "Reset your HelpDesk Pro password",
		HTMLBody: fmt.Sprintf(`<p>Hi %s,</p>
<p>A password reset was requested for your HelpDesk Pro account.</p>
<p>Choose a new password at <a href="%s">%s</a>. The link expires %s.</p>
<p>If you did not request this, you can ignore this email.</p>
<p>— HelpDesk Pro</p>`, name, resetLink, resetLink, expiresAt),
		TextBody: fmt.Sprintf(`Hi %s,

A password reset was requested for your HelpDesk Pro account.

Choose a new password at %s. The link expires %s.

If you did not request this, you can ignore this email.

— HelpDesk Pro
`, name, resetLink, expiresAt),
	}
}

// BuildTicketReplyEmail notifies a requester that an agent replied to
// their ticket
func BuildTicketReplyEmail(toEmail, requesterName, ticketNumber, subject, appURL string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: fmt.Sprintf("[%s] New reply: %s", ticketNumber, subject),
		HTMLBody: fmt.Sprintf(`<p>Hi %s,</p>
<p>There is a new reply on your ticket <strong>%s</strong> (%s).</p>
<p>View it at <a href="%s">%s</a>.</p>
<p>— HelpDesk Pro</p>`, requesterName, ticketNumber, subject, appURL, appURL),
		TextBody: fmt.Sprintf(`Hi %s,

There is a new reply on your ticket %s (%s).

View it at %s.

— HelpDesk Pro
`, requesterName, ticketNumber, subject, appURL),
	}
}

// BuildTestEmail builds the configuration-check email sent from the
// settings page
func BuildTestEmail(toEmail, fromName, fromAddress string) *Email {
	return &Email{
		To:      []string{toEmail},
		Subject: "HelpDesk Pro - Test Email",
		HTMLBody: fmt.Sprintf(`<p><strong>Success!</strong> Your email configuration is working correctly.</p>
<p>Outbound identity: %s &lt;%s&gt;</p>
<p>If you received this email, HelpDesk Pro is ready to send notifications.</p>`, fromName, fromAddress),
		TextBody: fmt.Sprintf(`Success! Your email configuration is working correctly.

Outbound identity: %s <%s>

If you received this email, HelpDesk Pro is ready to send notifications.
`, fromName, fromAddress),
	}
}
