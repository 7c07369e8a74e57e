package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      int    `yaml:"ttl_seconds"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Worker struct {
		OfferSweepMinutes int `yaml:"offer_sweep_minutes"`
		EventSweepMinutes int `yaml:"event_sweep_minutes"`
	} `yaml:"worker"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_URL is set (test/deployment mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.TTL = 300

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@propertydeals.com"
	cfg.Email.FromName = "PropertyDeals"

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 300
	}
	if cfg.Worker.OfferSweepMinutes == 0 {
		cfg.Worker.OfferSweepMinutes = 60
	}
	if cfg.Worker.EventSweepMinutes == 0 {
		cfg.Worker.EventSweepMinutes = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
