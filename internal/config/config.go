// Package config provides runtime configuration read from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a libpq-compatible connection string for pgxpool.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL builds a connection URL for golang-migrate's pgx driver.
func (d Database) URL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password),
		d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SMTP holds outbound mail settings. Notifications fall back to log-only
// delivery when User or Password is empty.
type SMTP struct {
	Host     string
	Port     string
	User     string
	Password string
}

// Configured reports whether real SMTP delivery is possible.
func (s SMTP) Configured() bool {
	return s.User != "" && s.Password != ""
}

// Config holds all knobs for the API server.
type Config struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// UseMemoryStore runs against the in-memory store instead of
	// Postgres. Meant for local development and demos.
	UseMemoryStore bool

	DB   Database
	SMTP SMTP

	// NotifyRecipient receives all form notifications.
	NotifyRecipient string
	NotifyTimeout   time.Duration

	CacheTTL time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        ":" + getenv("PORT", "8080"),
		ReadTimeout:     durenvs("READ_TIMEOUT", 15),
		WriteTimeout:    durenvs("WRITE_TIMEOUT", 15),
		IdleTimeout:     durenvs("IDLE_TIMEOUT", 60),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 10),
		UseMemoryStore:  boolenv("USE_MEMORY_STORE", false),
		DB: Database{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", "postgres"),
			Name:     getenv("DB_NAME", "sanctuary"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTP{
			Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getenv("SMTP_PORT", "587"),
			User:     getenv("SMTP_USER", ""),
			Password: getenv("SMTP_PASSWORD", ""),
		},
		NotifyRecipient: getenv("NOTIFY_RECIPIENT", "info@nechmerust.org"),
		NotifyTimeout:   durenvs("NOTIFY_TIMEOUT", 10),
		CacheTTL:        durenvs("CACHE_TTL", 60),
	}
}
