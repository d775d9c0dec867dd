package logger

import "log/slog"

// Config controls the local log output.
type Config struct {
	Format         string     `env:"LOG_FORMAT" envDefault:"json"` // json or text
	File           string     `env:"LOG_FILE"`
	Level          slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	FileMaxSizeMB  int        `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"50"`
	FileMaxBackups int        `env:"LOG_FILE_MAX_BACKUPS" envDefault:"5"`
	FileMaxAgeDays int        `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"30"`
	FileCompress   bool       `env:"LOG_FILE_COMPRESS" envDefault:"true"`
}

// SentryConfig holds the Sentry integration settings.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
}
