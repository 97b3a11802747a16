package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// Video provider
	TikTokSessionID string
	Region          string
	FetchCount      int

	// Curation
	TopNVideos           int
	MinSentimentScore    float64
	MaxCommentsAnalysis  int
	MaxCommentsScripting int
	AnalysisWorkers      int

	// Storage
	DownloadsPath string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		DatabaseURL:          mustGetEnv("DATABASE_URL"),
		RedisURL:             mustGetEnv("REDIS_URL"),
		GeminiAPIKey:         mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		TikTokSessionID:      getEnvOrDefault("TIKTOK_SESSION_ID", ""),
		Region:               getEnvOrDefault("REGION", "US"),
		FetchCount:           getEnvAsIntOrDefault("FETCH_COUNT", 50),
		TopNVideos:           getEnvAsIntOrDefault("TOP_N_VIDEOS", 20),
		MinSentimentScore:    getEnvAsFloatOrDefault("MIN_SENTIMENT_SCORE", 0.1),
		MaxCommentsAnalysis:  getEnvAsIntOrDefault("MAX_COMMENTS_FOR_ANALYSIS", 50),
		MaxCommentsScripting: getEnvAsIntOrDefault("MAX_COMMENTS_FOR_SCRIPTING", 20),
		AnalysisWorkers:      getEnvAsIntOrDefault("ANALYSIS_WORKERS", 4),
		DownloadsPath:        getEnvOrDefault("DOWNLOADS_PATH", "./downloads"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
