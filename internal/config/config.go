package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr   string
	DownloadsDir string
	YtdlpPath    string

	// Job lifecycle tuning
	RetentionTTL  time.Duration
	SweepInterval time.Duration
	JobTimeout    time.Duration

	LogLevel string
}

func Load() *Config {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		ServerAddr:    getEnvOrDefault("SERVER_ADDR", "127.0.0.1:5000"),
		DownloadsDir:  getEnvOrDefault("DOWNLOADS_DIR", "downloads"),
		YtdlpPath:     getEnvOrDefault("YTDLP_PATH", "yt-dlp"),
		RetentionTTL:  getDurationOrDefault("RETENTION_TTL", 10*time.Minute),
		SweepInterval: getDurationOrDefault("SWEEP_INTERVAL", time.Minute),
		JobTimeout:    getDurationOrDefault("JOB_TIMEOUT", 8*time.Minute),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
