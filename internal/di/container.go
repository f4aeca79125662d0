package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/adapters/invoices"
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/damlois/ai-credit-controller/internal/core"
	"github.com/damlois/ai-credit-controller/internal/factory"
	"github.com/damlois/ai-credit-controller/internal/logging"
	"github.com/damlois/ai-credit-controller/internal/scheduler"
	"github.com/damlois/ai-credit-controller/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewActivityFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLedgerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMailFactory); err != nil {
		return nil, err
	}

	// Register text completion client
	if err := container.Provide(func(f *factory.LLMFactory) (core.TextCompleter, error) {
		return f.CreateTextCompleter()
	}); err != nil {
		return nil, err
	}

	// Register activity log
	if err := container.Provide(func(f *factory.ActivityFactory) (core.ActivityLog, error) {
		return f.CreateActivityLog()
	}); err != nil {
		return nil, err
	}

	// Register reminder ledger
	if err := container.Provide(func(f *factory.LedgerFactory) (core.ReminderLedger, error) {
		return f.CreateReminderLedger()
	}); err != nil {
		return nil, err
	}

	// Register mail transports
	if err := container.Provide(func(f *factory.MailFactory) core.Mailer {
		return f.CreateMailer()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.MailFactory) core.MailboxReader {
		return f.CreateMailboxReader()
	}); err != nil {
		return nil, err
	}

	// Register invoice store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.InvoiceStore {
		return invoices.NewFileStore(cfg.GetString("invoices.path"), logger)
	}); err != nil {
		return nil, err
	}

	// Register classifier and generator
	if err := container.Provide(func(completer core.TextCompleter, textProc *utils.TextProcessor, cfg *config.Config, logger *zap.Logger) *core.ReplyClassifier {
		return core.NewReplyClassifier(completer, textProc, cfg.GetLLM().MaxBodySize, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(completer core.TextCompleter, textProc *utils.TextProcessor, cfg *config.Config, logger *zap.Logger) *core.ResponseGenerator {
		return core.NewResponseGenerator(completer, textProc, cfg.GetLLM().MaxBodySize, logger)
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		mailbox core.MailboxReader,
		classifier *core.ReplyClassifier,
		generator *core.ResponseGenerator,
		mailer core.Mailer,
		activity core.ActivityLog,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.TriageService {
		triageCfg := cfg.GetTriage()
		return core.NewTriageService(mailbox, classifier, generator, mailer, activity, logger, core.TriageOptions{
			EscalationAddress: triageCfg.EscalationEmail,
			IgnoredSenders:    triageCfg.IgnoredSenders,
		})
	}); err != nil {
		return nil, err
	}

	// Register reminder service
	if err := container.Provide(core.NewReminderService); err != nil {
		return nil, err
	}

	// Register scheduler
	if err := container.Provide(func(
		triage *core.TriageService,
		reminders *core.ReminderService,
		cfg *config.Config,
		logger *zap.Logger,
	) (*scheduler.Service, error) {
		interval, err := cfg.GetDuration("scheduler.poll_interval")
		if err != nil {
			return nil, err
		}
		return scheduler.New(triage, reminders, logger, scheduler.Options{
			PollInterval:     interval,
			RemindersEnabled: cfg.GetBool("scheduler.reminders_enabled"),
			TriageEnabled:    cfg.GetBool("scheduler.triage_enabled"),
		}), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
