package factory

import (
	"github.com/damlois/ai-credit-controller/internal/adapters/imap"
	"github.com/damlois/ai-credit-controller/internal/adapters/smtp"
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/damlois/ai-credit-controller/internal/core"
	"go.uber.org/zap"
)

// MailFactory creates the mail transport adapters
type MailFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailFactory creates a new mail factory
func NewMailFactory(cfg *config.Config, logger *zap.Logger) *MailFactory {
	return &MailFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailer creates the SMTP mailer
func (f *MailFactory) CreateMailer() core.Mailer {
	smtpCfg := f.cfg.GetSMTP()
	return smtp.NewMailer(
		smtpCfg.Host,
		smtpCfg.Port,
		smtpCfg.Username,
		smtpCfg.Password,
		smtpCfg.From,
		f.logger,
	)
}

// CreateMailboxReader creates the IMAP mailbox reader
func (f *MailFactory) CreateMailboxReader() core.MailboxReader {
	imapCfg := f.cfg.GetIMAP()
	return imap.NewReader(
		imapCfg.Host,
		imapCfg.Port,
		imapCfg.Username,
		imapCfg.Password,
		imapCfg.Mailbox,
		f.logger,
	)
}
