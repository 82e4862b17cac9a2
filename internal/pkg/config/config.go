// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Bot содержит параметры подключения к Bot API и данные оператора
type Bot struct {
	Token                string `yaml:"token"`
	OwnerID              int64  `yaml:"owner_id"`
	OwnerName            string `yaml:"owner_name"`
	UpdateTimeoutSeconds int    `yaml:"update_timeout_seconds"`
	SendTimeoutSeconds   int    `yaml:"send_timeout_seconds"`
	Debug                bool   `yaml:"debug"`
}

// Relay содержит настройки хранилища соответствий
type Relay struct {
	MappingTTL      time.Duration `yaml:"mapping_ttl"` // 0 - записи не устаревают
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Server содержит конфигурацию служебного HTTP-сервера
type Server struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogFile содержит настройки ротации файла логов
type LogFile struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string  `yaml:"level"`  // debug, info, warn, error
	Format string  `yaml:"format"` // json, text
	File   LogFile `yaml:"file"`
}

// Daemon содержит настройки запуска в фоновом режиме
type Daemon struct {
	Enabled bool   `yaml:"enabled"`
	PidFile string `yaml:"pid_file"`
	LogFile string `yaml:"log_file"`
	WorkDir string `yaml:"work_dir"`
}

// Config содержит конфигурацию приложения
type Config struct {
	Bot     Bot     `yaml:"bot"`
	Relay   Relay   `yaml:"relay"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
	Daemon  Daemon  `yaml:"daemon"`
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем YAML-файл
// (если он есть), затем переменные окружения и .env файл.
func LoadConfig(path string) (*Config, error) {
	// Отсутствие .env файла не является ошибкой.
	_ = godotenv.Load()

	if path == "" {
		path = getEnv("CONFIG_PATH", DefaultConfigPath)
	}

	cfg := defaultConfig()
	if err := loadFromYAML(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Bot: Bot{
			UpdateTimeoutSeconds: DefaultUpdateTimeoutSeconds,
			SendTimeoutSeconds:   DefaultSendTimeoutSeconds,
		},
		Relay: Relay{
			MappingTTL:      DefaultMappingTTL,
			CleanupInterval: DefaultCleanupInterval,
		},
		Server: Server{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File: LogFile{
				MaxSizeMB:  DefaultLogMaxSizeMB,
				MaxBackups: DefaultLogMaxBackups,
				MaxAgeDays: DefaultLogMaxAgeDays,
			},
		},
		Daemon: Daemon{
			PidFile: DefaultPidFile,
		},
	}
}

// loadFromYAML накладывает значения из YAML-файла поверх cfg.
// Отсутствующий файл не считается ошибкой.
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config %s: %w", filename, err)
	}
	return nil
}

// applyEnv переопределяет значения из переменных окружения
func applyEnv(cfg *Config) error {
	if v := getEnv("BOT_TOKEN", ""); v != "" {
		cfg.Bot.Token = v
	}
	if v := getEnv("OWNER_ID", ""); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid OWNER_ID: %w", err)
		}
		cfg.Bot.OwnerID = id
	}
	if v := getEnv("OWNER_NAME", ""); v != "" {
		cfg.Bot.OwnerName = v
	}

	intVars := []struct {
		key string
		dst *int
	}{
		{"UPDATE_TIMEOUT_SECONDS", &cfg.Bot.UpdateTimeoutSeconds},
		{"SEND_TIMEOUT_SECONDS", &cfg.Bot.SendTimeoutSeconds},
		{"SERVER_PORT", &cfg.Server.Port},
	}
	for _, iv := range intVars {
		if v := getEnv(iv.key, ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", iv.key, err)
			}
			*iv.dst = n
		}
	}

	boolVars := []struct {
		key string
		dst *bool
	}{
		{"BOT_DEBUG", &cfg.Bot.Debug},
		{"SERVER_ENABLED", &cfg.Server.Enabled},
		{"DAEMON", &cfg.Daemon.Enabled},
	}
	for _, bv := range boolVars {
		if v := getEnv(bv.key, ""); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", bv.key, err)
			}
			*bv.dst = b
		}
	}

	if v := getEnv("RELAY_MAPPING_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RELAY_MAPPING_TTL: %w", err)
		}
		cfg.Relay.MappingTTL = d
	}
	if v := getEnv("SERVER_HOST", ""); v != "" {
		cfg.Server.Host = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := getEnv("LOG_FORMAT", ""); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := getEnv("LOG_FILE", ""); v != "" {
		cfg.Logging.File.Path = v
	}
	return nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UpdateTimeout возвращает таймаут long polling
func (c *Config) UpdateTimeout() time.Duration {
	return time.Duration(c.Bot.UpdateTimeoutSeconds) * time.Second
}

// SendTimeout возвращает таймаут одного вызова Bot API
func (c *Config) SendTimeout() time.Duration {
	return time.Duration(c.Bot.SendTimeoutSeconds) * time.Second
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Bot.Token == "" || c.Bot.Token == placeholderToken {
		return fmt.Errorf("bot.token is not configured (set BOT_TOKEN)")
	}
	if c.Bot.OwnerID <= 0 {
		return fmt.Errorf("bot.owner_id must be a positive user id (set OWNER_ID)")
	}
	if c.Bot.UpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("bot.update_timeout_seconds must be positive")
	}
	if c.Bot.SendTimeoutSeconds <= 0 {
		return fmt.Errorf("bot.send_timeout_seconds must be positive")
	}

	if c.Relay.MappingTTL < 0 {
		return fmt.Errorf("relay.mapping_ttl must be non-negative (0 disables expiry)")
	}
	if c.Relay.MappingTTL > 0 && c.Relay.CleanupInterval <= 0 {
		return fmt.Errorf("relay.cleanup_interval must be positive when mapping_ttl is set")
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			return fmt.Errorf("server.port must be a valid port number (1-65535)")
		}
		if c.Server.ShutdownTimeout <= 0 {
			return fmt.Errorf("server.shutdown_timeout must be positive")
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	if c.Daemon.Enabled && c.Daemon.PidFile == "" {
		return fmt.Errorf("daemon.pid_file cannot be empty when daemon mode is enabled")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
