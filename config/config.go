package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	MenuSourceFile = "file"
	MenuSourceDB   = "db"
)

type Config struct {
	Menu   MenuConfig
	Orders OrdersConfig
	DB     DBConfig
	Log    LogConfig
}

type MenuConfig struct {
	Source  string // "file" or "db"
	File    string
	Lenient bool // skip malformed lines instead of failing the load
}

type OrdersConfig struct {
	// RecordOnConfirm keeps cancelled orders out of the history.
	// When false, an order is recorded as soon as it is created.
	RecordOnConfirm bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		Menu: MenuConfig{
			Source:  strings.ToLower(getEnv("MENU_SOURCE", MenuSourceFile)),
			File:    getEnv("MENU_FILE", "menu.txt"),
			Lenient: getBool("MENU_LENIENT", false),
		},
		Orders: OrdersConfig{
			RecordOnConfirm: getBool("RECORD_ON_CONFIRM", true),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "cafe"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "warn")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getBool accepts "1"/"true"/"yes" and "0"/"false"/"no"; anything else yields def.
func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}
