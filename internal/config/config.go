package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ConfigDir       string
	DBPath          string
	LogPath         string
	APIBaseURL      string
	RequestTimeout  time.Duration
	RequestRate     float64
	RequestBurst    int
	MaxRetries      int
	RetryUnit       time.Duration
	SubmitDelay     time.Duration
	LoadDelay       time.Duration
	MonitorInterval time.Duration
	LoginRoute      string
	MockServerAddr  string
}

func Default() Config {
	dir := filepath.Join(userConfigDir(), "threadscity")
	return Config{
		ConfigDir:       dir,
		DBPath:          filepath.Join(dir, "threadscity.db"),
		LogPath:         filepath.Join(dir, "debug.log"),
		APIBaseURL:      "http://localhost:3001",
		RequestTimeout:  10 * time.Second,
		RequestRate:     10,
		RequestBurst:    5,
		MaxRetries:      2,
		RetryUnit:       1 * time.Second,
		SubmitDelay:     1 * time.Second,
		LoadDelay:       500 * time.Millisecond,
		MonitorInterval: 30 * time.Second,
		LoginRoute:      "/login",
		MockServerAddr:  ":3001",
	}
}

// Load returns Default() with overrides from an optional .env file and
// THREADSCITY_* environment variables. Invalid values keep the default.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("THREADSCITY_CONFIG_DIR"); v != "" {
		cfg.ConfigDir = v
		cfg.DBPath = filepath.Join(v, "threadscity.db")
		cfg.LogPath = filepath.Join(v, "debug.log")
	}
	cfg.APIBaseURL = getEnv("THREADSCITY_API_URL", cfg.APIBaseURL)
	cfg.MockServerAddr = getEnv("THREADSCITY_MOCK_ADDR", cfg.MockServerAddr)
	cfg.LoginRoute = getEnv("THREADSCITY_LOGIN_ROUTE", cfg.LoginRoute)
	cfg.RequestTimeout = getDuration("THREADSCITY_TIMEOUT", cfg.RequestTimeout)
	cfg.RetryUnit = getDuration("THREADSCITY_RETRY_UNIT", cfg.RetryUnit)
	cfg.SubmitDelay = getDuration("THREADSCITY_SUBMIT_DELAY", cfg.SubmitDelay)
	cfg.LoadDelay = getDuration("THREADSCITY_LOAD_DELAY", cfg.LoadDelay)
	cfg.MonitorInterval = getDuration("THREADSCITY_MONITOR_INTERVAL", cfg.MonitorInterval)
	cfg.MaxRetries = getInt("THREADSCITY_MAX_RETRIES", cfg.MaxRetries)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
