package service

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends outbound notifications. Implementations must not panic;
// failures are reported as errors, logged by callers, and never roll back a
// completed state change.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
	log    *logrus.Logger
}

// NewSMTPMailer builds the production mailer from SMTP settings
func NewSMTPMailer(host string, port int, sender, password string, log *logrus.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, sender, password),
		sender: sender,
		log:    log,
	}
}

func (m *smtpMailer) Send(to, subject, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mailer panic: %v", r)
		}
	}()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Warnf("Failed to send mail to %s: %+v", to, err)
		return err
	}
	return nil
}

// NopMailer drops all mail; used when SMTP is not configured
type NopMailer struct{}

func (NopMailer) Send(to, subject, body string) error { return nil }
