package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StoreSQL   = "sql"
	StoreRedis = "redis"
)

type Config struct {
	Port string

	// Settings persistence
	SettingsStore string
	DBDriver      string
	DBPath        string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Outbound
	GraphAPIBase string
	ProbeTimeout time.Duration
	GeminiAPIKey string
	GeminiModel  string

	// Mock login
	OTPCode      string
	OTPMinLength int

	// Simulation
	SimulationInterval   time.Duration
	StatusDeliveredDelay time.Duration
	StatusReadDelay      time.Duration
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		SettingsStore:        getEnv("SETTINGS_STORE", StoreSQL),
		DBDriver:             getEnv("DB_DRIVER", DriverSQLite),
		DBPath:               getEnv("DB_PATH", "./whatsapp.db"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBName:               getEnv("DB_NAME", "whatsapp_console"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBSSLMode:            getEnv("DB_SSLMODE", "disable"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		GraphAPIBase:         getEnv("GRAPH_API_BASE", "https://graph.facebook.com"),
		ProbeTimeout:         getEnvDuration("PROBE_TIMEOUT", 10*time.Second),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OTPCode:              getEnv("OTP_CODE", "1234"),
		OTPMinLength:         getEnvInt("OTP_MIN_LENGTH", 4),
		SimulationInterval:   getEnvDuration("SIMULATION_INTERVAL", 15*time.Second),
		StatusDeliveredDelay: getEnvDuration("STATUS_DELIVERED_DELAY", time.Second),
		StatusReadDelay:      getEnvDuration("STATUS_READ_DELAY", 2*time.Second),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SettingsStore {
	case StoreSQL, StoreRedis:
	default:
		return fmt.Errorf("unsupported SETTINGS_STORE %q", c.SettingsStore)
	}
	if c.OTPMinLength <= 0 {
		return fmt.Errorf("OTP_MIN_LENGTH must be > 0")
	}
	durations := []struct {
		name string
		val  time.Duration
	}{
		{"PROBE_TIMEOUT", c.ProbeTimeout},
		{"SIMULATION_INTERVAL", c.SimulationInterval},
		{"STATUS_DELIVERED_DELAY", c.StatusDeliveredDelay},
		{"STATUS_READ_DELAY", c.StatusReadDelay},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("%s must be > 0", d.name)
		}
	}
	if c.StatusReadDelay < c.StatusDeliveredDelay {
		return fmt.Errorf("STATUS_READ_DELAY must not be shorter than STATUS_DELIVERED_DELAY")
	}
	return nil
}

// getEnv treats an empty variable as unset, so a blank line in .env keeps the default.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int in env, using default", "key", key, "value", v)
		return fallback
	}
	return i
}

// getEnvDuration accepts Go durations ("15s") or plain seconds ("15").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("invalid duration in env, using default", "key", key, "value", v)
	return fallback
}
