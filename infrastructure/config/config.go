package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"account_connector/domain/entities"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the connector
type Config struct {
	TargetURL    string
	StorageDir   string
	SessionToken string
	Locale       string
	ResetProfile bool
	Headless     bool
	StepTimeout  time.Duration
	Latitude     float64
	Longitude    float64
	Country      string
	LogLevel     string

	MaxStaleAccounts            int
	TreatSilentLoginAsConnected bool
	AllowAccountDeletion        bool

	Credentials entities.Credentials
	Selectors   entities.SelectorTable

	GeminiAPIKey string
	GeminiModel  string
}

// Load reads an optional .env file then the environment.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TargetURL:    stringOr(getenv("TARGET_URL"), "https://www.google.fr"),
		StorageDir:   stringOr(getenv("SESSION_STORAGE_DIR"), "./sessionStorage"),
		SessionToken: stringOr(getenv("SESSION_TOKEN"), "user_token_01"),
		Locale:       stringOr(getenv("LOCALE"), "fr-FR"),
		Country:      stringOr(getenv("COUNTRY"), "FR"),
		LogLevel:     stringOr(getenv("LOG_LEVEL"), "info"),
		Credentials: entities.Credentials{
			Email:    getenv("GOOGLE_EMAIL"),
			Password: getenv("GOOGLE_PASSWORD"),
		},
		GeminiAPIKey: getenv("GEMINI_API_KEY"),
		GeminiModel:  stringOr(getenv("GEMINI_MODEL"), "gemini-1.5-pro"),
	}

	var err error
	if cfg.Headless, err = boolOr(getenv, "HEADLESS", false); err != nil {
		return nil, err
	}
	if cfg.ResetProfile, err = boolOr(getenv, "RESET_PROFILE", false); err != nil {
		return nil, err
	}
	if cfg.TreatSilentLoginAsConnected, err = boolOr(getenv, "TREAT_SILENT_LOGIN_AS_CONNECTED", false); err != nil {
		return nil, err
	}
	if cfg.AllowAccountDeletion, err = boolOr(getenv, "ALLOW_ACCOUNT_DELETION", true); err != nil {
		return nil, err
	}
	if cfg.MaxStaleAccounts, err = intOr(getenv, "MAX_STALE_ACCOUNTS", 5); err != nil {
		return nil, err
	}
	if cfg.MaxStaleAccounts < 0 {
		return nil, fmt.Errorf("MAX_STALE_ACCOUNTS must not be negative")
	}
	if cfg.Latitude, err = floatOr(getenv, "GEO_LATITUDE", 48.8566); err != nil {
		return nil, err
	}
	if cfg.Longitude, err = floatOr(getenv, "GEO_LONGITUDE", 2.3522); err != nil {
		return nil, err
	}

	cfg.StepTimeout = 30 * time.Second
	if raw := getenv("STEP_TIMEOUT"); raw != "" {
		cfg.StepTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STEP_TIMEOUT: %w", err)
		}
		if cfg.StepTimeout <= 0 {
			return nil, fmt.Errorf("STEP_TIMEOUT must be positive")
		}
	}

	cfg.Selectors, err = entities.DefaultSelectors(cfg.Locale)
	if err != nil {
		return nil, err
	}
	if path := getenv("SELECTORS_FILE"); path != "" {
		override, err := LoadSelectors(path)
		if err != nil {
			return nil, err
		}
		cfg.Selectors = cfg.Selectors.Merge(override)
	}

	return cfg, nil
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolOr(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func intOr(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func floatOr(getenv func(string) string, key string, def float64) (float64, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
