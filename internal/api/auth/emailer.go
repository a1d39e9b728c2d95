package auth

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/rs/zerolog/log"
)

func sendMail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("SMTP send failed")
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", os.Getenv("API_URL"), token)
	if os.Getenv("API_URL") == "" {
		link = fmt.Sprintf("http://localhost:8080/verify?token=%s", token)
	}
	body := fmt.Sprintf("Click the following link to verify your Resolux account:\n\n%s", link)
	return sendMail(to, "Verify Your Resolux Account", body)
}

func SendPasswordResetEmail(to string, resetLink string) error {
	body := fmt.Sprintf("A password reset was requested for your Resolux account.\n\nReset it here:\n%s\n\nIf you didn't request this, ignore this email.", resetLink)
	return sendMail(to, "Reset Your Resolux Password", body)
}
