package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int            `json:"port"`
	Env          string         `json:"env"`
	Pepper       string         `json:"pepper"`
	HMACKey      string         `json:"hmac_key"`
	CSRFKey      string         `json:"csrf_key"`
	CSRFEnabled  bool           `json:"csrf_enabled"`
	CacheTTLSecs int            `json:"cache_ttl_secs"`
	MediaDir     string         `json:"media_dir"`
	Database     PostgresConfig `json:"database"`
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

func DefaultConfig() Config {
	return Config{
		Port:         1111,
		Env:          "dev",
		Pepper:       "secret-random-string",
		HMACKey:      "secret-hmac-key",
		CSRFKey:      "32-byte-long-auth-key-for-csrf!!",
		CSRFEnabled:  false,
		CacheTTLSecs: 20,
		MediaDir:     "media",
		Database:     DefaultPostgresConfig(),
	}
}

func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "",
		Name:     "yatube",
	}
}

// LoadConfig loads configuration from a .config.json file if present,
// otherwise it falls back to the default dev setup. Secrets can also come
// from the environment (optionally via a .env file), which takes precedence
// over the file. In production the config file is required.
func LoadConfig(prod bool) Config {
	// A missing .env file is fine, the environment may be set by other means.
	_ = godotenv.Load()

	c := DefaultConfig()
	f, err := os.Open(".config.json")
	if err != nil {
		if prod {
			panic("a .config.json file is required in production")
		}
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&c); err != nil {
			panic(err)
		}
		slog.Info("loaded .config.json")
	}
	applyEnv(&c)
	return c
}

// applyEnv overrides individual config values from the environment.
func applyEnv(c *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		c.Env = env
	}
	if pepper := os.Getenv("PEPPER"); pepper != "" {
		c.Pepper = pepper
	}
	if key := os.Getenv("HMAC_KEY"); key != "" {
		c.HMACKey = key
	}
	if key := os.Getenv("CSRF_KEY"); key != "" {
		c.CSRFKey = key
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		c.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Database.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		c.Database.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		c.Database.Name = name
	}
}
