// Package mailer delivers account emails. Delivery is an external concern:
// the core only ever fires these off in a goroutine and logs failures, it
// never waits on them.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer sends account-related emails.
type Mailer interface {
	SendActivationEmail(to, name, code string) error
}

// FromEnv returns an SMTP mailer when SMTP_HOST is configured, otherwise a
// mailer that just logs (local dev, CI).
func FromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("Warning: SMTP_HOST not set, activation emails will only be logged")
		return &LogMailer{}
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &SMTPMailer{
		Addr:     host + ":" + port,
		From:     os.Getenv("SMTP_FROM"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		Host:     host,
	}
}

type SMTPMailer struct {
	Addr     string
	Host     string
	From     string
	Username string
	Password string
}

func (m *SMTPMailer) SendActivationEmail(to, name, code string) error {
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your email\r\n\r\n"+
			"Hi %s,\r\n\r\nYour verification code is %s. It expires in 5 minutes.\r\n",
		m.From, to, name, code))
	return smtp.SendMail(m.Addr, auth, m.From, []string{to}, msg)
}

// LogMailer is the no-SMTP fallback. Handy in tests and local runs.
type LogMailer struct{}

func (m *LogMailer) SendActivationEmail(to, name, code string) error {
	log.Printf("[Mailer] activation email to %s (%s), code %s", to, name, code)
	return nil
}
