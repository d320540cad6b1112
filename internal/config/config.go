package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPort is used when PORT is unset or zero.
const DefaultPort = 3000

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidPort                 = errors.New("PORT must be a number between 1 and 65535")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string   `mapstructure:"env"`        // current application environment (local, production etc)
	Port      int      `mapstructure:"-"`          // HTTP port, parsed from PORT
	DataDir   string   `mapstructure:"data_dir"`   // directory holding index.json and the category files
	OutputDir string   `mapstructure:"output_dir"` // where the static site generator writes
	DB        DB       `mapstructure:"database"`   // database configuration section
	Telegram  Telegram `mapstructure:"-"`          // moderator notifications, loaded from environment
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Telegram holds the moderator notification settings. Both fields must be
// set for notifications to be sent.
type Telegram struct {
	Token           string
	ModeratorChatID int64
}

// Enabled reports whether moderator notifications are configured.
func (t Telegram) Enabled() bool {
	return t.Token != "" && t.ModeratorChatID != 0
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration for commands that talk to the database.
// DATABASE_URL is required.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if _, err := cfg.DB.DSN(); err != nil {
		return nil, fmt.Errorf("DATABASE_URL: %w", err)
	}

	return cfg, nil
}

// LoadStatic reads configuration for the static site generator, which does
// not need a database.
func LoadStatic() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	// A missing .env file is fine, the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("data_dir", "data")
	v.SetDefault("output_dir", "dist")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("data_dir", "DATA_DIR")
	_ = v.BindEnv("output_dir", "OUTPUT_DIR")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_moderator_chat_id", "TELEGRAM_MODERATOR_CHAT_ID")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	port, err := parsePort(v.GetString("port"))
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	cfg.Telegram.Token = v.GetString("telegram_api_token")
	cfg.Telegram.ModeratorChatID = v.GetInt64("telegram_moderator_chat_id")

	return &cfg, nil
}

// parsePort accepts an empty or zero value as DefaultPort.
func parsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPort, nil
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, raw)
	}
	if port == 0 {
		return DefaultPort, nil
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	return port, nil
}
