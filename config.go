package main

import (
	"bufio"
	"os"
	"strings"
)

// Config holds the server settings, read from the environment after an
// optional .env file has been loaded.
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	AllowedOrigins []string
}

// LoadConfig loads .env (if present) and assembles the config with
// defaults suitable for local development.
func LoadConfig() Config {
	loadDotEnv(".env")

	cfg := Config{
		Port:           os.Getenv("PORT"),
		DBPath:         os.Getenv("DB_PATH"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: []string{"*"},
	}
	if cfg.Port == "" {
		cfg.Port = "3001"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./crm.db"
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	return cfg
}

// loadDotEnv sets environment variables from a .env file. A missing file is
// fine; values already set in the environment are not overwritten.
func loadDotEnv(filename string) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
