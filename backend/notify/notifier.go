package notify

import (
	"fmt"
	"log/slog"
	"net"
	"net/smtp"

	"zynetra/backend/config"
)

// Notifier delivers a verification code to a registrant out of band.
// Delivery is best-effort: callers must treat a returned error as non-fatal
// and surface the code through the operator log instead.
type Notifier interface {
	Send(email, code, name string) error
}

// SMTPNotifier sends the verification mail over plain-auth SMTP.
type SMTPNotifier struct {
	addr     string
	host     string
	username string
	password string
	from     string
}

func NewSMTP(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		host:     cfg.Host,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (n *SMTPNotifier) Send(email, code, name string) error {
	msg := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: Your Zynetra verification code\r\n"+
		"\r\n"+
		"Hi %s,\r\n"+
		"\r\n"+
		"You are one step away from activating your corporate account.\r\n"+
		"\r\n"+
		"Your verification code is: %s\r\n"+
		"\r\n"+
		"This code expires in 15 minutes.\r\n"+
		"\r\n"+
		"If you did not request this code, ignore this message.\r\n",
		n.from, email, name, code)

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	return smtp.SendMail(n.addr, auth, n.username, []string{email}, []byte(msg))
}

// LogNotifier is the operator side channel: it writes the code to the log
// so manual recovery is possible when no mail transport is configured.
type LogNotifier struct{}

func (LogNotifier) Send(email, code, name string) error {
	slog.Warn("otp delivery via log fallback", "source", "notify", "email", email, "code", code)
	return nil
}
