package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	StorageBucket   string
	Environment     string

	// Messaging core knobs.
	InboxPollInterval  time.Duration
	BadgePollInterval  time.Duration
	MaxAttachmentBytes int64
	AllowedImageTypes  []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:      getEnv("STORAGE_BUCKET", "reclaim-item-photos"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		InboxPollInterval:  getEnvAsDuration("INBOX_POLL_INTERVAL", 10*time.Second),
		BadgePollInterval:  getEnvAsDuration("BADGE_POLL_INTERVAL", 10*time.Second),
		MaxAttachmentBytes: getEnvAsInt64("MAX_ATTACHMENT_BYTES", 5*1024*1024),
		AllowedImageTypes: strings.Split(
			getEnv("ALLOWED_IMAGE_TYPES", "image/jpeg,image/jpg,image/png,image/gif,image/webp"), ","),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
