// Package config centralises all environment / flag configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business‑logic
// layers receive an already‑built Config instance via dependency‑injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// Data stores
	MongoURI string
	DBName   string

	// External services
	GitHubToken string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Search tuning
	StarFilterMaxAttempts int
	StarFilterTargetCount int
}

// Load parses the environment (and an optional .env file) into Config.
// It panics on missing critical variables so mis‑configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no‑op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	return Config{
		Port:                  must("PORT"),
		MongoURI:              must("MONGODB_URI"),
		DBName:                getEnv("MONGODB_DB", "contrib_fyi"),
		GitHubToken:           getEnv("GITHUB_TOKEN", ""),
		ReadTimeout:           getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:          getDuration("WRITE_TIMEOUT_SEC", 30),
		StarFilterMaxAttempts: getInt("STAR_FILTER_MAX_ATTEMPTS", 3),
		StarFilterTargetCount: getInt("STAR_FILTER_TARGET_COUNT", 10),
	}
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
