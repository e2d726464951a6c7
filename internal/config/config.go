package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wardrobe-budget/internal/allocation"
	"wardrobe-budget/internal/domain"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	EnvDBPath         = "WARDROBE_BUDGET_DB_PATH"
	EnvMigrationsDir  = "WARDROBE_BUDGET_MIGRATIONS_DIR"
	EnvLogLevel       = "WARDROBE_BUDGET_LOG_LEVEL"
	EnvAlertThreshold = "WARDROBE_BUDGET_ALERT_THRESHOLD"
	EnvAMQPURL        = "WARDROBE_BUDGET_AMQP_URL"
	EnvAMQPExchange   = "WARDROBE_BUDGET_AMQP_EXCHANGE"
	EnvAMQPQueue      = "WARDROBE_BUDGET_AMQP_QUEUE"
	EnvEnvFile        = "WARDROBE_BUDGET_ENV_FILE"
)

// Config holds all wardrobe-budget configuration.
type Config struct {
	Database   DatabaseConfig   `toml:"database" json:"database"`
	Alerts     AlertsConfig     `toml:"alerts" json:"alerts"`
	Allocation AllocationConfig `toml:"allocation" json:"allocation"`
	Notify     NotifyConfig     `toml:"notify" json:"notify"`
	Log        LogConfig        `toml:"log" json:"log"`
}

type DatabaseConfig struct {
	Path          string `toml:"path,omitempty" json:"path,omitempty"`
	MigrationsDir string `toml:"migrations_dir,omitempty" json:"migrations_dir,omitempty"`
}

type AlertsConfig struct {
	DefaultThreshold int `toml:"default_threshold" json:"default_threshold"`
}

// AllocationConfig overrides the built-in default category weights when
// DefaultWeights is non-empty.
type AllocationConfig struct {
	DefaultWeights []WeightConfig `toml:"default_weights,omitempty" json:"default_weights,omitempty"`
}

type WeightConfig struct {
	Name       string  `toml:"name" json:"name"`
	Percentage float64 `toml:"percentage" json:"percentage"`
}

// NotifyConfig selects where notifiable alerts are dispatched. The log
// notifier is always active; AMQP publishing needs AMQPURL.
type NotifyConfig struct {
	AMQPURL      string `toml:"amqp_url,omitempty" json:"amqp_url,omitempty"`
	AMQPExchange string `toml:"amqp_exchange" json:"amqp_exchange"`
	AMQPQueue    string `toml:"amqp_queue" json:"amqp_queue"`
}

type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Alerts: AlertsConfig{DefaultThreshold: domain.DefaultAlertThreshold},
		Notify: NotifyConfig{
			AMQPExchange: "wardrobe-budget",
			AMQPQueue:    "budget_alerts",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadDotEnv loads a .env file into the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDataPerm); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var problems []error

	if err := domain.ValidateAlertThreshold(c.Alerts.DefaultThreshold); err != nil {
		problems = append(problems, fmt.Errorf("alerts.default_threshold %d: must be between 0 and 100", c.Alerts.DefaultThreshold))
	}

	if len(c.Allocation.DefaultWeights) > 0 {
		if _, err := allocation.Allocate(0, c.WeightTable()); err != nil {
			problems = append(problems, fmt.Errorf("allocation.default_weights: %w", err))
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Errorf("log.level %q: supported values are debug|info|warn|error", c.Log.Level))
	}

	if c.Notify.AMQPURL != "" {
		if strings.TrimSpace(c.Notify.AMQPExchange) == "" {
			problems = append(problems, errors.New("notify.amqp_exchange is required when notify.amqp_url is set"))
		}
		if strings.TrimSpace(c.Notify.AMQPQueue) == "" {
			problems = append(problems, errors.New("notify.amqp_queue is required when notify.amqp_url is set"))
		}
	}

	return errors.Join(problems...)
}

// WeightTable returns the configured default weights, or nil to signal the
// built-in table.
func (c Config) WeightTable() []allocation.Weight {
	if len(c.Allocation.DefaultWeights) == 0 {
		return nil
	}
	table := make([]allocation.Weight, 0, len(c.Allocation.DefaultWeights))
	for _, weight := range c.Allocation.DefaultWeights {
		table = append(table, allocation.Weight{
			Name:       weight.Name,
			Percentage: decimal.NewFromFloat(weight.Percentage),
		})
	}
	return table
}

func applyEnv(cfg *Config) error {
	if value := os.Getenv(EnvDBPath); value != "" {
		cfg.Database.Path = value
	}
	if value := os.Getenv(EnvMigrationsDir); value != "" {
		cfg.Database.MigrationsDir = value
	}
	if value := os.Getenv(EnvLogLevel); value != "" {
		cfg.Log.Level = value
	}
	if value := os.Getenv(EnvAlertThreshold); value != "" {
		threshold, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s %q: must be an integer", EnvAlertThreshold, value)
		}
		cfg.Alerts.DefaultThreshold = threshold
	}
	if value := os.Getenv(EnvAMQPURL); value != "" {
		cfg.Notify.AMQPURL = value
	}
	if value := os.Getenv(EnvAMQPExchange); value != "" {
		cfg.Notify.AMQPExchange = value
	}
	if value := os.Getenv(EnvAMQPQueue); value != "" {
		cfg.Notify.AMQPQueue = value
	}
	return nil
}
