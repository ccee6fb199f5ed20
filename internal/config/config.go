package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/patient-monitor/internal/engine"
	"github.com/oshokin/patient-monitor/internal/logger"
)

// Config holds the settings of every binary.
type Config struct {
	// NotifierAddress is the gRPC address of the notifier service.
	NotifierAddress string `yaml:"notifier_addr"`
	// Timeout bounds every RPC and outbound messenger call.
	Timeout time.Duration `yaml:"timeout"`
	// StateFile is where the notifier persists the latest patient state.
	StateFile string `yaml:"state_file"`
	// AlertsDB is the SQLite database holding the alert history.
	AlertsDB string `yaml:"alerts_db"`
	// FrameSource is the landmark stream for the monitor, "-" for stdin.
	FrameSource string `yaml:"frame_source"`
	// QueueSize bounds the monitor's outgoing notification queue.
	QueueSize int `yaml:"queue_size"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level"`
	// Telegram enables forwarding alerts to a chat. Nil logs them instead.
	Telegram *Telegram `yaml:"telegram,omitempty"`
	// Engine tunes the interpreters.
	Engine engine.Config `yaml:"engine"`
}

// Telegram holds the Bot API credentials.
type Telegram struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
	APIURL string `yaml:"api_url,omitempty"`
}

const (
	// DefaultConfigFilename is the settings file looked up when none is given.
	DefaultConfigFilename = "patient-monitor-settings.yaml"
	// DefaultStateFilename is the default notifier state file.
	DefaultStateFilename = "patient-notifier-state.json"
	// DefaultAlertsFilename is the default alert history database.
	DefaultAlertsFilename = "patient-alerts.db"
	// DefaultFrameSource reads frames from stdin.
	DefaultFrameSource = "-"
	// DefaultQueueSize is the default notification queue capacity.
	DefaultQueueSize = 64
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second
	// DefaultTelegramAPIURL is the public Bot API endpoint.
	DefaultTelegramAPIURL = "https://api.telegram.org"

	// DefaultFilePermissions restricts the settings file to its owner.
	DefaultFilePermissions = 0o600
)

var (
	errConfigIsNotSet         = errors.New("configuration is not set")
	errNotifierSocketRequired = errors.New("notifier address must be provided")
	errQueueSize              = errors.New("queue size must not be negative")
	errUnknownLogLevel        = errors.New("unknown log level")
	errTelegramIncomplete     = errors.New("telegram token and chat_id must both be set")
)

// Load reads the settings at path, fills defaults and validates them.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save validates cfg and writes it to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and fills defaults in place.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.NotifierAddress == "" {
		return errNotifierSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.NotifierAddress); err != nil {
		return fmt.Errorf("invalid notifier socket: %w", err)
	}

	setDefaults(cfg)

	if cfg.QueueSize < 0 {
		return errQueueSize
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if err := validateTelegram(cfg.Telegram); err != nil {
		return err
	}

	if err := cfg.Engine.Validate(); err != nil {
		return fmt.Errorf("invalid engine settings: %w", err)
	}

	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.AlertsDB == "" {
		cfg.AlertsDB = DefaultAlertsFilename
	}

	if cfg.FrameSource == "" {
		cfg.FrameSource = DefaultFrameSource
	}

	if cfg.QueueSize == 0 {
		cfg.QueueSize = DefaultQueueSize
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	cfg.Engine = cfg.Engine.WithDefaults()
}

func validateTelegram(t *Telegram) error {
	if t == nil {
		return nil
	}

	if t.Token == "" || t.ChatID == "" {
		return errTelegramIncomplete
	}

	if t.APIURL == "" {
		t.APIURL = DefaultTelegramAPIURL
	}

	if _, err := url.ParseRequestURI(t.APIURL); err != nil {
		return fmt.Errorf("invalid telegram API URL: %w", err)
	}

	return nil
}
