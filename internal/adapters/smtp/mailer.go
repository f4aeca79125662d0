package smtp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

type sendMailFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// Mailer is an SMTP implementation of the Mailer interface. Port 465 uses
// implicit TLS; any other port negotiates STARTTLS.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger

	sendMail    sendMailFunc
	sendMailTLS sendMailFunc
}

// NewMailer creates a new SMTP mailer. The from address defaults to the
// username when unset.
func NewMailer(host string, port int, username, password, from string, logger *zap.Logger) *Mailer {
	if port < 1 {
		port = 465
	}
	if strings.TrimSpace(from) == "" {
		from = username
	}
	return &Mailer{
		host:        strings.TrimSpace(host),
		port:        port,
		username:    strings.TrimSpace(username),
		password:    password,
		from:        strings.TrimSpace(from),
		logger:      logger,
		sendMail:    smtp.SendMail,
		sendMailTLS: smtp.SendMailTLS,
	}
}

// Send delivers a single plain-text email.
func (m *Mailer) Send(ctx context.Context, recipient, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if m.username == "" || m.password == "" {
		return core.ErrMissingCredentials
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return fmt.Errorf("recipient address is empty")
	}

	message := m.buildMessage(recipient, subject, body)
	auth := sasl.NewPlainClient("", m.username, m.password)
	address := fmt.Sprintf("%s:%d", m.host, m.port)

	send := m.sendMail
	if m.port == 465 {
		send = m.sendMailTLS
	}
	if err := send(address, auth, m.from, []string{recipient}, strings.NewReader(message)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", recipient, err)
	}

	m.logger.Debug("Email sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}

func (m *Mailer) buildMessage(recipient, subject, body string) string {
	headers := []string{
		"From: " + sanitizeHeader(m.from),
		"To: " + sanitizeHeader(recipient),
		"Subject: " + sanitizeHeader(subject),
		"Date: " + time.Now().UTC().Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + normalizeBody(body)
}

// sanitizeHeader strips CR/LF so drafted text can never inject headers.
func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.TrimSpace(value)
}

func normalizeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "\r\n")
}
