package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Admin    AdminConfig    `yaml:"admin"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
	DocsDir string `yaml:"docs_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"-"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	SeatHoldTTLSeconds    int `yaml:"seat_hold_ttl_seconds"`
	RoutesCacheTTLSeconds int `yaml:"routes_cache_ttl_seconds"`
	CancelCutoffHours     int `yaml:"cancel_cutoff_hours"`
}

type SMTPConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	From        string `yaml:"from"`
	Password    string `yaml:"-"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type AdminConfig struct {
	// PasswordHash is a bcrypt hash; the cleartext is never configured.
	PasswordHash    string `yaml:"-"`
	JWTSecret       string `yaml:"-"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	LoginRatePerMin int    `yaml:"login_rate_per_minute"`
}

// LoadConfig reads the YAML file at path and then pulls secrets from the
// environment. Credentials never live in the file or in source.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.Admin.PasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	cfg.Admin.JWTSecret = os.Getenv("ADMIN_JWT_SECRET")

	if cfg.Booking.CancelCutoffHours == 0 {
		cfg.Booking.CancelCutoffHours = 12
	}
	if cfg.Admin.TokenTTLMinutes == 0 {
		cfg.Admin.TokenTTLMinutes = 60
	}
	if cfg.Admin.LoginRatePerMin == 0 {
		cfg.Admin.LoginRatePerMin = 5
	}

	return &cfg, nil
}
