package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/SAP-F-2025/gradable-block-service/internal/validator"
)

type Config struct {
	Environment string     `validate:"required,oneof=development staging production test"`
	Port        string     `validate:"required"`
	LogLevel    slog.Level `validate:"-"`

	Database DatabaseConfig
	RedisURL string

	Casdoor CasdoorConfig
	Kafka   KafkaConfig

	// DefaultLocale is used when Accept-Language matches no supported locale
	DefaultLocale string `validate:"required,oneof=en ru"`
	// StaffRoles lists the identity-provider roles treated as course staff
	StaffRoles []string `validate:"required,min=1"`
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	User     string `validate:"required"`
	Password string
	Name     string `validate:"required"`
	SSLMode  string `validate:"required,oneof=disable require verify-ca verify-full"`
	TimeZone string

	MaxOpenConns int `validate:"min=1"`
	MaxIdleConns int `validate:"min=0"`
}

// DSN returns the postgres connection string
func (d DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	if d.TimeZone != "" {
		dsn += " TimeZone=" + d.TimeZone
	}
	return dsn
}

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string `validate:"required"`
}

// Enabled reports whether events should go to Kafka instead of the in-memory publisher
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// LoadConfig reads an optional .env file and then the process environment
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         getEnv("DB_NAME", "gradable_block"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			TimeZone:     getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},
		RedisURL: os.Getenv("REDIS_URL"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", ""),
			Topic:   getEnv("KAFKA_TOPIC", "block-events"),
		},
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		StaffRoles:    getEnvList("STAFF_ROLES", "teacher,admin"),
	}

	if err := validator.New().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvList(key, def string) []string {
	parts := strings.Split(getEnv(key, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
