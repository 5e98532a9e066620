package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		TLS  bool   `yaml:"tls"` // консоль отдается по HTTPS (влияет на cookie и CSRF)
	} `yaml:"server"`

	API struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"api"`

	Session struct {
		Secret     string        `yaml:"secret"`
		TTL        time.Duration `yaml:"ttl"`
		CookieName string        `yaml:"cookie_name"`
	} `yaml:"session"`

	Security struct {
		CSRFKey     string `yaml:"csrf_key"`
		CSRFEnabled bool   `yaml:"csrf_enabled"`
	} `yaml:"security"`

	Plans struct {
		PlusID string `yaml:"plus_id"` // запись premium плана на сервере
		FreeID string `yaml:"free_id"` // запись basic плана на сервере
	} `yaml:"plans"`

	Upload struct {
		MaxVideoSize int64         `yaml:"max_video_size"`
		StagingTTL   time.Duration `yaml:"staging_ttl"`
	} `yaml:"upload"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"` // For local storage
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Payments struct {
		PublishableKey string `yaml:"publishable_key"`
		SecretKey      string `yaml:"secret_key"`
		WebhookURL     string `yaml:"webhook_url"`
	} `yaml:"payments"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

var AppConfig *Config

// LoadConfig читает .env (если есть), затем YAML файл, затем переопределения из окружения.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case os.IsNotExist(err):
		log.Printf("Config file %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"

	cfg.API.BaseURL = "https://api.emibocquillon.fr"
	cfg.API.Timeout = 30 * time.Second
	cfg.API.UserAgent = "admin-console"

	cfg.Session.TTL = 12 * time.Hour
	cfg.Session.CookieName = "admin_session"

	cfg.Security.CSRFEnabled = true

	cfg.Plans.PlusID = "696753c2f2bf8d805e0e7699"
	cfg.Plans.FreeID = "69675444f2bf8d805e0e769d"

	cfg.Upload.MaxVideoSize = 200 * 1024 * 1024 // 200MB
	cfg.Upload.StagingTTL = 2 * time.Hour

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./staging"

	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	return &cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	setString(&cfg.API.BaseURL, "API_BASE_URL")
	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setString(&cfg.Security.CSRFKey, "CSRF_KEY")
	setString(&cfg.Plans.PlusID, "PLUS_PLAN_ID")
	setString(&cfg.Plans.FreeID, "FREE_PLAN_ID")
	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Payments.PublishableKey, "STRIPE_PUBLISHABLE_KEY")
	setString(&cfg.Payments.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Payments.WebhookURL, "STRIPE_WEBHOOK_URL")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret (SESSION_SECRET) is required")
	}
	if c.Security.CSRFEnabled && len(c.Security.CSRFKey) != 32 {
		return fmt.Errorf("security.csrf_key (CSRF_KEY) must be exactly 32 bytes")
	}
	if c.Plans.PlusID == "" || c.Plans.FreeID == "" {
		return fmt.Errorf("plans.plus_id and plans.free_id are required")
	}
	if c.Upload.MaxVideoSize <= 0 {
		return fmt.Errorf("upload.max_video_size must be positive")
	}
	return nil
}

// Address возвращает host:port для http сервера
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig("")
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		return cfg
	}
	return AppConfig
}
