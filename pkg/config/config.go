package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Knowledge KnowledgeConfig
	Media     MediaConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	StaticDir    string
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MongoURI      string
	MongoDatabase string
}

type GeminiConfig struct {
	APIKey            string
	Model             string
	APIVersion        string // explicit override, empty means resolve from the model name
	BaseURL           string
	CompletionTimeout time.Duration
	ListTimeout       time.Duration
}

type KnowledgeConfig struct {
	Path string
}

// Media providers.
const (
	MediaCloudinary = "cloudinary"
	MediaS3         = "s3"
	MediaLocal      = "local"
)

type MediaConfig struct {
	Provider string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryBaseURL   string
	Folder              string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	LocalDir string
}

type AdminConfig struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	TokenExp     time.Duration
	RefreshExp   time.Duration
}

type RateLimitConfig struct {
	ChatPerSecond float64
	ChatBurst     int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work on their own (Docker/K8s).
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 60)
	tokenExp := getEnvInt("JWT_EXPIRATION_HOURS", 12)
	refreshExp := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168)
	completionTimeout := getEnvInt("GOOGLE_COMPLETION_TIMEOUT_SECONDS", 30)
	listTimeout := getEnvInt("GOOGLE_LIST_TIMEOUT_SECONDS", 5)
	chatRate, err := strconv.ParseFloat(getEnv("CHAT_RATE_PER_SECOND", "1"), 64)
	if err != nil {
		chatRate = 1
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			BodyLimit:    getEnvInt("SERVER_BODY_LIMIT_MB", 55) * 1024 * 1024,
			StaticDir:    getEnv("STATIC_DIR", ""),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			DBName:        getEnv("DB_NAME", "nationwide"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGODB_DATABASE", "nationwide"),
		},
		Gemini: GeminiConfig{
			APIKey:            strings.TrimSpace(getEnv("GOOGLE_API_KEY", "")),
			Model:             strings.TrimSpace(getEnv("GOOGLE_MODEL", "gemini-2.0-flash")),
			APIVersion:        strings.TrimSpace(getEnv("GOOGLE_API_VERSION", "")),
			BaseURL:           getEnv("GOOGLE_API_BASE_URL", "https://generativelanguage.googleapis.com"),
			CompletionTimeout: time.Duration(completionTimeout) * time.Second,
			ListTimeout:       time.Duration(listTimeout) * time.Second,
		},
		Knowledge: KnowledgeConfig{
			Path: getEnv("KNOWLEDGE_BASE_PATH", "data/knowledge.json"),
		},
		Media: MediaConfig{
			Provider:            strings.ToLower(getEnv("MEDIA_PROVIDER", MediaLocal)),
			CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			CloudinaryBaseURL:   getEnv("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1"),
			Folder:              getEnv("MEDIA_FOLDER", "nationwide"),
			S3Endpoint:          getEnv("S3_ENDPOINT", ""),
			S3Region:            getEnv("S3_REGION", "us-east-1"),
			S3Bucket:            getEnv("S3_BUCKET", ""),
			S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
			S3PublicURL:         getEnv("S3_PUBLIC_URL", ""),
			LocalDir:            getEnv("UPLOAD_DIR", "uploads"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET_KEY", "change-me-in-production"),
			TokenExp:     time.Duration(tokenExp) * time.Hour,
			RefreshExp:   time.Duration(refreshExp) * time.Hour,
		},
		RateLimit: RateLimitConfig{
			ChatPerSecond: chatRate,
			ChatBurst:     getEnvInt("CHAT_RATE_BURST", 5),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}
