package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string
	RulesPath   string
	Port        string

	TruckCount    int
	TruckCapacity int
	HubLocation   int
	MaxPasses     int

	RedisURL string
	PlanTTL  time.Duration
}

// LoadDotEnv reads a .env file when present. A missing file is not an error.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}

// Load reads every setting, applying defaults for the local sqlite setup.
func Load() (Config, error) {
	cfg := Config{
		DBDriver:    strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/packages.json"),
		RulesPath:   Get("RULES_PATH", ""),
		Port:        Get("PORT", "8080"),
		RedisURL:    Get("REDIS_URL", ""),
	}

	var err error
	if cfg.TruckCount, err = GetInt("TRUCK_COUNT", 3); err != nil {
		return Config{}, err
	}
	if cfg.TruckCapacity, err = GetInt("TRUCK_CAPACITY", 16); err != nil {
		return Config{}, err
	}
	if cfg.HubLocation, err = GetInt("HUB_LOCATION", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxPasses, err = GetInt("MAX_PASSES", 1000); err != nil {
		return Config{}, err
	}
	if cfg.PlanTTL, err = GetDuration("PLAN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("config: DB_DRIVER=%q must be sqlite or postgres", cfg.DBDriver)
	}

	if cfg.TruckCount < 1 || cfg.TruckCapacity < 1 {
		return Config{}, fmt.Errorf("config: TRUCK_COUNT and TRUCK_CAPACITY must be positive")
	}

	return cfg, nil
}

// DSN is the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}
