package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Config is the SMTP account mail is sent from.
type Config struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

// Mailer sends plain text email over SMTP. With no host configured it
// only logs what it would have sent.
type Mailer struct {
	cfg      Config
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// Send sends a plain text email using SMTP.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		logger.Log.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("SMTP not configured, email skipped")
		return nil
	}

	auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.Host)

	msg := []byte("From: " + m.cfg.Sender + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := m.cfg.Host + ":" + m.cfg.Port

	if err := m.sendMail(address, auth, m.cfg.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
