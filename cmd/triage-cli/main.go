package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/adapters/invoices"
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/damlois/ai-credit-controller/internal/core"
	"github.com/damlois/ai-credit-controller/internal/factory"
	"github.com/damlois/ai-credit-controller/internal/logging"
	"github.com/damlois/ai-credit-controller/internal/utils"
)

var (
	mode      = flag.String("mode", "classify", "Operation to run (classify, triage, sweep)")
	inputFile = flag.String("file", "", "Message body file for classify mode (use stdin if not specified)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := dispatch(cfg, logger); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}

func dispatch(cfg *config.Config, logger *zap.Logger) error {
	completer, err := factory.NewLLMFactory(cfg, logger).CreateTextCompleter()
	if err != nil {
		return fmt.Errorf("create LLM client: %w", err)
	}

	textProc := utils.NewTextProcessor(logger)
	maxBodySize := cfg.GetLLM().MaxBodySize
	classifier := core.NewReplyClassifier(completer, textProc, maxBodySize, logger)
	generator := core.NewResponseGenerator(completer, textProc, maxBodySize, logger)

	ctx := context.Background()

	switch *mode {
	case "classify":
		return runClassify(ctx, classifier, generator)
	case "triage":
		return runTriage(ctx, cfg, logger, classifier, generator)
	case "sweep":
		return runSweep(ctx, cfg, logger, generator)
	default:
		return fmt.Errorf("unknown mode: %s", *mode)
	}
}

// runClassify reads one message body and shows what the triage pipeline
// would decide, without sending any email.
func runClassify(ctx context.Context, classifier *core.ReplyClassifier, generator *core.ResponseGenerator) error {
	body, err := readBody()
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Message ===\n%s\n", body)

	startTime := time.Now()
	result, err := classifier.Classify(ctx, body)
	if err != nil {
		return fmt.Errorf("classify message: %w", err)
	}

	fmt.Printf("\n=== Classification ===\n")
	fmt.Printf("Needs reply: %t\n", result.NeedsReply)
	fmt.Printf("Needs escalation: %t\n", result.NeedsEscalation)
	fmt.Printf("Processing time: %v\n", time.Since(startTime))

	if result.NeedsReply && !result.NeedsEscalation {
		draft, err := generator.DraftReply(ctx, body)
		if err != nil {
			return fmt.Errorf("draft reply: %w", err)
		}
		fmt.Printf("\n=== Drafted reply ===\n%s\n", draft)
	}
	return nil
}

func runTriage(ctx context.Context, cfg *config.Config, logger *zap.Logger, classifier *core.ReplyClassifier, generator *core.ResponseGenerator) error {
	mailFactory := factory.NewMailFactory(cfg, logger)
	activityLog, err := factory.NewActivityFactory(cfg, logger).CreateActivityLog()
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}

	triageCfg := cfg.GetTriage()
	service := core.NewTriageService(
		mailFactory.CreateMailboxReader(),
		classifier,
		generator,
		mailFactory.CreateMailer(),
		activityLog,
		logger,
		core.TriageOptions{
			EscalationAddress: triageCfg.EscalationEmail,
			IgnoredSenders:    triageCfg.IgnoredSenders,
		},
	)

	records, err := service.RunTriageCycle(ctx)
	if err != nil {
		return err
	}
	printRecords(records)
	return nil
}

func runSweep(ctx context.Context, cfg *config.Config, logger *zap.Logger, generator *core.ResponseGenerator) error {
	mailFactory := factory.NewMailFactory(cfg, logger)
	activityLog, err := factory.NewActivityFactory(cfg, logger).CreateActivityLog()
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	reminderLedger, err := factory.NewLedgerFactory(cfg, logger).CreateReminderLedger()
	if err != nil {
		return fmt.Errorf("create reminder ledger: %w", err)
	}

	service := core.NewReminderService(
		invoices.NewFileStore(cfg.GetString("invoices.path"), logger),
		generator,
		mailFactory.CreateMailer(),
		reminderLedger,
		activityLog,
		logger,
	)

	records, err := service.RunReminderSweep(ctx, time.Now())
	if err != nil {
		return err
	}
	printRecords(records)
	return nil
}

func printRecords(records []core.OutcomeRecord) {
	fmt.Printf("\n=== Outcome (%d record(s)) ===\n", len(records))
	for _, rec := range records {
		fmt.Println(rec.String())
	}
}

func readBody() (string, error) {
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}

	fmt.Println("Reading message body from stdin (Ctrl+D to finish)...")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
