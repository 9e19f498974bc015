package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port              string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	MotionAPIKey      string
	MotionWorkspaceID string
	MotionBaseURL     string
	RetryMaxAttempts  int
}

func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		MotionAPIKey:      os.Getenv("MOTION_API_KEY"),
		MotionWorkspaceID: os.Getenv("MOTION_WORKSPACE_ID"),
		MotionBaseURL:     os.Getenv("MOTION_BASE_URL"),
		RetryMaxAttempts:  getEnvInt("RETRY_MAX_ATTEMPTS", 3),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
