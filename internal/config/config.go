package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/joho/godotenv"
)

// Config holds the service configuration read from the environment.
type Config struct {
	Port        string
	StoreDriver string

	MongoURI string
	MongoDB  string

	JWTSecret   string
	TokenExpiry time.Duration

	RedisAddr        string
	RedisDB          int
	UserCodeCacheTTL time.Duration

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string

	AllowedOrigins []string
	UploadDir      string
	LogLevel       string
}

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, using environment")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", StoreMongo),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
		MongoDB:  getEnv("MONGO_DB", "health_o_mania"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenExpiry: getDuration("TOKEN_EXPIRY", 72*time.Hour),

		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisDB:          getInt("REDIS_DB", 0),
		UserCodeCacheTTL: getDuration("USER_CODE_CACHE_TTL", 24*time.Hour),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPSender:   os.Getenv("SMTP_SENDER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Log.WithField("key", key).Warnf("Invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Log.WithField("key", key).Warnf("Invalid duration %q, using %s", v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
