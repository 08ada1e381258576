// Package config defines the service configuration and how it is loaded.
package config

import "time"

type Config struct {
	Log      LogConfig      `koanf:"log"`
	Server   ServerConfig   `koanf:"server"`
	Admin    AdminConfig    `koanf:"admin"`
	Database DatabaseConfig `koanf:"database"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
	Mail     MailConfig     `koanf:"mail"`
	Kommo    KommoConfig    `koanf:"kommo"`
}

type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	// Format: json (production encoder) or console (development encoder).
	Format string `koanf:"format" validate:"oneof=json console"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// ExposeErrors sends the raw message of unexpected failures in 500
	// bodies. When false clients get a generic message; the log always has it.
	ExposeErrors bool `koanf:"expose_errors"`
}

// AdminConfig is the listener for /health and /metrics. Empty Addr disables it.
type AdminConfig struct {
	Addr string `koanf:"addr"`
}

type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"oneof=pgx postgres sqlite3"`
	DSN             string        `koanf:"dsn" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
	PingTimeout     time.Duration `koanf:"ping_timeout" validate:"gt=0"`
}

// RabbitMQConfig enables lead events when URL is set.
type RabbitMQConfig struct {
	URL string `koanf:"url" validate:"omitempty,url"`
}

func (c RabbitMQConfig) Enabled() bool { return c.URL != "" }

// MailConfig enables new-lead e-mails when Host and To are set.
type MailConfig struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port" validate:"gte=0,lte=65535"`
	User     string   `koanf:"user"`
	Password string   `koanf:"password"`
	From     string   `koanf:"from" validate:"omitempty,email"`
	To       []string `koanf:"to" validate:"dive,email"`
}

func (c MailConfig) Enabled() bool { return c.Host != "" && len(c.To) > 0 }

// KommoConfig enables syncing new leads to a Kommo CRM pipeline when
// BaseURL and Token are set.
type KommoConfig struct {
	BaseURL  string `koanf:"base_url" validate:"omitempty,url"`
	Token    string `koanf:"token"`
	StatusID int    `koanf:"status_id" validate:"gte=0"`
}

func (c KommoConfig) Enabled() bool { return c.BaseURL != "" && c.Token != "" }

// New returns the defaults. Database.DSN has none and must be provided.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			ExposeErrors:    true,
		},
		Admin: AdminConfig{
			Addr: ":9090",
		},
		Database: DatabaseConfig{
			Driver:          "pgx",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			PingTimeout:     5 * time.Second,
		},
		Mail: MailConfig{
			Port: 587,
		},
	}
}
