package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host          string
	Port          string
	Username      string
	Password      string
	Database      string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	MaxLifetime   time.Duration
	MigrationsDir string
	SeedData      bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	EventCreated          string
	EventDeleted          string
	RegistrationCreated   string
	RegistrationCancelled string
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	PassSecret string
	BcryptCost int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":5000"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			Username:      getEnv("DB_USERNAME", "event_user"),
			Password:      getEnv("DB_PASSWORD", "event_pass"),
			Database:      getEnv("DB_NAME", "event_manager"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:   time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
			MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
			SeedData:      getEnvBool("DB_SEED_DATA", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled: getEnvBool("KAFKA_ENABLED", true),
			Topics: TopicConfig{
				EventCreated:          getEnv("KAFKA_TOPIC_EVENT_CREATED", "eventmgr.event.created"),
				EventDeleted:          getEnv("KAFKA_TOPIC_EVENT_DELETED", "eventmgr.event.deleted"),
				RegistrationCreated:   getEnv("KAFKA_TOPIC_REG_CREATED", "eventmgr.registration.created"),
				RegistrationCancelled: getEnv("KAFKA_TOPIC_REG_CANCELLED", "eventmgr.registration.cancelled"),
			},
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev-only-secret"),
			TokenTTL:   time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 720)) * time.Minute,
			PassSecret: getEnv("PASS_SECRET_KEY", "dev-only-pass-secret"),
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
	}
}

// DSN builds the postgres connection string for lib/pq.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
