package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendAdminEmail sends a plain-text email to the configured admin address.
// Missing SMTP/admin configuration is a logged no-op, not an error — admin
// notifications are best-effort.
func SendAdminEmail(subject, text string) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	host := os.Getenv("SMTP_HOST")
	if adminEmail == "" || host == "" {
		log.Printf("📭 [MAILER] ADMIN_EMAIL/SMTP_HOST not configured, skipping: %s", subject)
		return nil
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@ghazaltech.com"
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		from, adminEmail, subject, text))

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}

	if err := smtp.SendMail(host+":"+port, auth, from, []string{adminEmail}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
