package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPageURL is the WeatherLink embeddable summary page for the
// Saint-Raphaël port station.
const DefaultPageURL = "https://www.weatherlink.com/embeddablePage/show/d8f389c51427467eb5c4f266caaf78a9/summary"

// DefaultWebsiteURL is the port authority page linked from alert messages.
const DefaultWebsiteURL = "https://www.ville-saintraphael.fr/utile/la-regie-des-ports-raphaelois"

// Config holds all service settings, populated from environment variables.
type Config struct {
	PageURL       string
	WindThreshold float64 // knots
	CheckInterval time.Duration

	// Fetcher tuning. SettleDelay gives the embed's client-side script
	// time to populate the DOM after page load.
	FetchTimeout time.Duration
	SettleDelay  time.Duration

	// Notification configuration.
	NotificationMethod string // email, telegram, or both
	WebsiteURL         string
	Location           string

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	RecipientEmails []string

	TelegramBotToken string
	TelegramChatIDs  []string

	// Debug artifacts and snapshot persistence.
	DebugDir      string
	DebugFiles    bool
	LastCheckPath string

	// Optional check-record feed for external dashboards.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	threshold, err := parseFloat("WIND_THRESHOLD", 15)
	if err != nil {
		return nil, err
	}

	interval, err := parseDuration("CHECK_INTERVAL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	settleDelay, err := parseDuration("SETTLE_DELAY", 8*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	smtpPort, err := parseInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		PageURL:       envOrDefault("PAGE_URL", DefaultPageURL),
		WindThreshold: threshold,
		CheckInterval: interval,
		FetchTimeout:  fetchTimeout,
		SettleDelay:   settleDelay,

		NotificationMethod: strings.ToLower(envOrDefault("NOTIFICATION_METHOD", "email")),
		WebsiteURL:         envOrDefault("WEBSITE_URL", DefaultWebsiteURL),
		Location:           envOrDefault("LOCATION", "Saint-Raphaël port"),

		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        smtpPort,
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SenderEmail:     os.Getenv("SENDER_EMAIL"),
		RecipientEmails: splitList(os.Getenv("RECIPIENT_EMAILS")),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatIDs:  splitList(os.Getenv("TELEGRAM_CHAT_IDS")),

		DebugDir:      envOrDefault("DEBUG_DIR", "debug"),
		DebugFiles:    envOrDefault("DEBUG_FILES", "true") == "true",
		LastCheckPath: envOrDefault("LAST_CHECK_PATH", "debug/last_check.json"),

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "wind-checks"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.PageURL == "" {
		return nil, errors.New("PAGE_URL is required")
	}
	if cfg.WindThreshold <= 0 {
		return nil, errors.New("WIND_THRESHOLD must be positive")
	}
	if cfg.CheckInterval <= 0 {
		return nil, errors.New("CHECK_INTERVAL must be positive")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
