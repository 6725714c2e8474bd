package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Internal    InternalConfig
	Storage     StorageConfig
	Recognition RecognitionConfig
	RateLimit   RateLimitConfig
	Jobs        JobsConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type InternalConfig struct {
	// ServiceToken authenticates the recognition consumer on the internal
	// API surface. Distinct from the JWT secret on purpose.
	ServiceToken string
}

type StorageConfig struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	PresignTTLMin int
}

type RecognitionConfig struct {
	// BaseURL empty means offline mode: enrollment synthesizes placeholder
	// encodings instead of calling the service.
	BaseURL        string
	TimeoutSeconds int
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
}

type JobsConfig struct {
	ReconcileCron     string
	SweepCron         string
	StuckThresholdMin int
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	presignTTL, _ := strconv.Atoi(getEnv("STORAGE_PRESIGN_TTL_MIN", "15"))
	recogTimeout, _ := strconv.Atoi(getEnv("RECOGNITION_TIMEOUT_SECONDS", "30"))
	rlMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX_REQUESTS", "120"))
	rlWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	stuckMin, _ := strconv.Atoi(getEnv("JOBS_STUCK_THRESHOLD_MIN", "10"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Wedding Gallery"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "wedding_gallery"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Internal: InternalConfig{
			ServiceToken: getEnv("INTERNAL_SERVICE_TOKEN", ""),
		},
		Storage: StorageConfig{
			Region:        getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:      getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:        getEnv("STORAGE_BUCKET", "wedding-photos"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
			PresignTTLMin: presignTTL,
		},
		Recognition: RecognitionConfig{
			BaseURL:        getEnv("RECOGNITION_API_URL", ""),
			TimeoutSeconds: recogTimeout,
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnv("RATE_LIMIT_ENABLED", "true") == "true",
			MaxRequests:   rlMax,
			WindowSeconds: rlWindow,
		},
		Jobs: JobsConfig{
			ReconcileCron:     getEnv("JOBS_RECONCILE_CRON", "*/30 * * * *"),
			SweepCron:         getEnv("JOBS_SWEEP_CRON", "*/5 * * * *"),
			StuckThresholdMin: stuckMin,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
