package config

import "time"

// Значения конфигурации по умолчанию.
const (
	DefaultConfigPath = "config.yml"

	// Bot defaults
	DefaultUpdateTimeoutSeconds = 60
	DefaultSendTimeoutSeconds   = 30

	// Relay defaults
	DefaultMappingTTL      = 0 * time.Second
	DefaultCleanupInterval = 1 * time.Hour

	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// Logging defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 5
	DefaultLogMaxAgeDays = 14

	// Daemon defaults
	DefaultPidFile = "relay-bot.pid"
	DefaultPidPerm = 0o644
	DefaultLogPerm = 0o640
)

// placeholderToken - значение из примера конфигурации, которое нельзя использовать.
const placeholderToken = "YOUR_TELEGRAM_BOT_TOKEN"
