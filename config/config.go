package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config 應用程式設定
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Log          LogConfig          `yaml:"log"`
	Availability AvailabilityConfig `yaml:"availability"`
	SeedDemo     bool               `yaml:"seed_demo"`
}

// ServerConfig HTTP 伺服器設定
type ServerConfig struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

// DatabaseConfig 資料庫連線設定
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // mysql、postgres 或 memory
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxRetries      int           `yaml:"max_retries"`
	RetryInterval   time.Duration `yaml:"retry_interval"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level string `yaml:"level"`
}

// AvailabilityConfig 車輛可用性同步設定
type AvailabilityConfig struct {
	// SerializePerCar 開啟後同一台車的可用性讀寫會依序執行
	SerializePerCar bool `yaml:"serialize_per_car"`
	// ResyncSchedule 定時全量同步的 cron 表達式，空字串表示停用
	ResyncSchedule  string `yaml:"resync_schedule"`
	ResyncOnStartup bool   `yaml:"resync_on_startup"`
}

// Default 回傳預設設定
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "127.0.0.1",
			Port:            3306,
			User:            "rental_user",
			Password:        "rental1234",
			Name:            "rental_db",
			SSLMode:         "disable",
			MaxRetries:      5,
			RetryInterval:   5 * time.Second,
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load 讀取設定：預設值 -> YAML 檔案（可選）-> 環境變數
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.GinMode = getEnv("GIN_MODE", cfg.Server.GinMode)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxRetries = getEnvInt("DB_MAX_RETRIES", cfg.Database.MaxRetries)

	cfg.Availability.SerializePerCar = getEnvBool("AVAILABILITY_SERIALIZE", cfg.Availability.SerializePerCar)
	cfg.Availability.ResyncSchedule = getEnv("AVAILABILITY_RESYNC_SCHEDULE", cfg.Availability.ResyncSchedule)
	cfg.Availability.ResyncOnStartup = getEnvBool("AVAILABILITY_RESYNC_ON_STARTUP", cfg.Availability.ResyncOnStartup)

	cfg.SeedDemo = getEnvBool("SEED_DEMO", cfg.SeedDemo)
}

// Validate 檢查設定是否合法
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q: must be mysql, postgres or memory", c.Database.Driver)
	}

	if c.Database.MaxRetries < 1 {
		return fmt.Errorf("database max_retries must be at least 1, got %d", c.Database.MaxRetries)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Availability.ResyncSchedule != "" {
		if _, err := cron.ParseStandard(c.Availability.ResyncSchedule); err != nil {
			return fmt.Errorf("invalid availability resync schedule %q: %w", c.Availability.ResyncSchedule, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
