package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"account_connector/application/connector"
	"account_connector/application/session"
	"account_connector/domain/entities"
	"account_connector/domain/interfaces"
	"account_connector/infrastructure/ai"
	"account_connector/infrastructure/browser"
	"account_connector/infrastructure/config"
	"account_connector/infrastructure/security"
	"account_connector/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

type TerminalInterface struct {
	connector    *connector.Connector
	bootstrapper *session.Bootstrapper
	describer    *ai.Describer
	browserCtrl  interfaces.Browser
	logger       *logrus.Logger
	reader       *bufio.Reader
	out          io.Writer
}

func NewTerminalInterface() (*TerminalInterface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Setup logger
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Credentials.IsZero() {
		logger.Warn("GOOGLE_EMAIL and GOOGLE_PASSWORD are not set, login will fail")
	}

	profiles := storage.NewProfileStore(cfg.StorageDir)
	if cfg.ResetProfile {
		if err := profiles.ResetProfile(cfg.SessionToken); err != nil {
			return nil, err
		}
		logger.WithField("token", cfg.SessionToken).Info("Browser profile reset")
	}
	profileDir, err := profiles.EnsureProfile(cfg.SessionToken)
	if err != nil {
		return nil, err
	}

	// Initialize browser controller
	browserCtrl, err := browser.NewBrowserController(browser.Options{
		UserDataDir: profileDir,
		Headless:    cfg.Headless,
		Locale:      cfg.Locale,
		StepTimeout: cfg.StepTimeout,
		Latitude:    cfg.Latitude,
		Longitude:   cfg.Longitude,
		Country:     cfg.Country,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	// Initialize AI describer, optional
	var describer *ai.Describer
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			browserCtrl.Close()
			return nil, fmt.Errorf("failed to initialize AI service: %w", err)
		}
		describer = ai.NewDescriber(client, logger)
	}

	securityLayer := security.NewSecurityLayer(logger, cfg.AllowAccountDeletion)

	conn := connector.NewConnector(browserCtrl, securityLayer, logger, connector.Options{
		TargetURL:                   cfg.TargetURL,
		Selectors:                   cfg.Selectors,
		Credentials:                 cfg.Credentials,
		MaxStaleAccounts:            cfg.MaxStaleAccounts,
		TreatSilentLoginAsConnected: cfg.TreatSilentLoginAsConnected,
	})

	return &TerminalInterface{
		connector:    conn,
		bootstrapper: session.NewBootstrapper(browserCtrl, cfg.Selectors, cfg.TargetURL, logger),
		describer:    describer,
		browserCtrl:  browserCtrl,
		logger:       logger,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

func (t *TerminalInterface) Run() error {
	ctx := context.Background()

	if _, err := t.bootstrapper.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap session: %w", err)
	}

	connected, err := t.connector.Connect(ctx)
	if err != nil {
		t.logger.WithError(err).Error("Connection failed")
	}
	fmt.Fprintf(t.out, "connected: %v\n\n", connected)

	fmt.Fprintln(t.out, "Commands: check, login, describe <path> [prompt], quit")
	fmt.Fprintln(t.out)

	for {
		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "quit" || input == "exit" || input == "q" {
			return nil
		}

		if err := t.execute(ctx, input); err != nil {
			fmt.Fprintf(t.out, "Error: %v\n\n", err)
		}
	}
}

func (t *TerminalInterface) execute(ctx context.Context, input string) error {
	fields := strings.Fields(input)
	switch fields[0] {
	case "check":
		connected, err := t.connector.CheckConnection(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(t.out, "connected: %v (%s)\n\n", connected, t.connector.State())
		return nil

	case "login":
		ok, err := t.connector.Login(ctx)
		fmt.Fprintf(t.out, "logged in: %v (%s)\n\n", ok, t.connector.State())
		return err

	case "describe":
		if t.describer == nil {
			return fmt.Errorf("GEMINI_API_KEY is not set")
		}
		if len(fields) < 2 {
			return fmt.Errorf("usage: describe <path> [prompt]")
		}
		desc, err := t.describer.Describe(ctx, entities.ImageRequest{
			Path:   fields[1],
			Prompt: strings.Join(fields[2:], " "),
		})
		if err != nil {
			return err
		}
		for key, value := range desc.Data {
			fmt.Fprintf(t.out, "%s: %v\n", key, value)
		}
		fmt.Fprintln(t.out)
		return nil

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (t *TerminalInterface) Close() error {
	return t.browserCtrl.Close()
}
