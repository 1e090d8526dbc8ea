package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// KV backends selectable with KV_BACKEND.
const (
	KVBackendMemory   = "memory"
	KVBackendFile     = "file"
	KVBackendRedis    = "redis"
	KVBackendPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single operator account for password login.
	OperatorUsername     string
	OperatorPasswordHash string
	// Google accounts allowed to sign in as operators.
	OperatorEmails []string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Exchange rates
	RatesBaseCurrency    string
	RatesAPIURL          string
	RatesAPIKey          string
	RatesAutoRefresh     bool
	RatesRefreshInterval time.Duration
	RatesFetchTimeout    time.Duration
	RatesErrorThreshold  int

	// Wizard
	WizardProcessingDelay time.Duration
	DefaultFeeRate        decimal.Decimal

	// Local persistence
	KVBackend     string
	KVFilePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	// Notifications and analytics
	KafkaBrokers           []string
	KafkaNotificationTopic string
	PosthogAPIKey          string
	PosthogEndpoint        string

	// HTTP
	ReceiptLocale      string
	DevHostnames       []string
	CORSAllowedOrigins []string
	RateLimit          string
	LoginRateLimit     string
	ReferenceCacheTTL  time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "rjb-tranz")
	viper.SetDefault("OPERATOR_USERNAME", "admin")
	viper.SetDefault("OPERATOR_PASSWORD_HASH", "")
	viper.SetDefault("OPERATOR_EMAILS", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	viper.SetDefault("RATES_BASE_CURRENCY", "USD")
	viper.SetDefault("RATES_API_URL", "https://api.exchangerate.host")
	viper.SetDefault("RATES_API_KEY", "")
	viper.SetDefault("RATES_AUTO_REFRESH", true)
	viper.SetDefault("RATES_REFRESH_INTERVAL", "30s")
	viper.SetDefault("RATES_FETCH_TIMEOUT", "10s")
	viper.SetDefault("RATES_ERROR_THRESHOLD", 3)
	viper.SetDefault("WIZARD_PROCESSING_DELAY", "2s")
	viper.SetDefault("DEFAULT_FEE_RATE", "0")
	viper.SetDefault("KV_BACKEND", KVBackendFile)
	viper.SetDefault("KV_FILE_PATH", "data/kv.json")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TTL", "0s")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_NOTIFICATION_TOPIC", "rjb-tranz-notifications")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
	viper.SetDefault("RECEIPT_LOCALE", "en-US")
	viper.SetDefault("DEV_HOSTNAMES", "localhost,127.0.0.1,github.dev,app.github.dev,csb.app,codesandbox.io")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("REFERENCE_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Transactions are kept in memory.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOr("JWT_EXPIRY_DURATION", 12*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "rjb-tranz"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.OperatorUsername = viper.GetString("OPERATOR_USERNAME")
	cfg.OperatorPasswordHash = viper.GetString("OPERATOR_PASSWORD_HASH")
	if cfg.OperatorPasswordHash == "" {
		log.Println("Warning: OPERATOR_PASSWORD_HASH not set. Password login is disabled.")
	}
	cfg.OperatorEmails = listOf("OPERATOR_EMAILS")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	cfg.RatesBaseCurrency = strings.ToUpper(viper.GetString("RATES_BASE_CURRENCY"))
	if len(cfg.RatesBaseCurrency) != 3 {
		log.Printf("Warning: Invalid value for RATES_BASE_CURRENCY ('%s'). Defaulting to USD.\n", cfg.RatesBaseCurrency)
		cfg.RatesBaseCurrency = "USD"
	}
	cfg.RatesAPIURL = viper.GetString("RATES_API_URL")
	cfg.RatesAPIKey = viper.GetString("RATES_API_KEY")
	cfg.RatesAutoRefresh = viper.GetBool("RATES_AUTO_REFRESH")
	cfg.RatesRefreshInterval = durationOr("RATES_REFRESH_INTERVAL", 30*time.Second)
	cfg.RatesFetchTimeout = durationOr("RATES_FETCH_TIMEOUT", 10*time.Second)
	cfg.RatesErrorThreshold = viper.GetInt("RATES_ERROR_THRESHOLD")
	if cfg.RatesErrorThreshold <= 0 {
		log.Printf("Warning: Invalid value for RATES_ERROR_THRESHOLD (%d). Defaulting to 3.\n", cfg.RatesErrorThreshold)
		cfg.RatesErrorThreshold = 3
	}

	cfg.WizardProcessingDelay = durationOr("WIZARD_PROCESSING_DELAY", 2*time.Second)
	feeStr := viper.GetString("DEFAULT_FEE_RATE")
	fee, err := decimal.NewFromString(feeStr)
	if err != nil || fee.IsNegative() || fee.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		log.Printf("Warning: Invalid value for DEFAULT_FEE_RATE ('%s'). Defaulting to 0.\n", feeStr)
		fee = decimal.Zero
	}
	cfg.DefaultFeeRate = fee

	cfg.KVBackend = strings.ToLower(viper.GetString("KV_BACKEND"))
	switch cfg.KVBackend {
	case KVBackendMemory, KVBackendFile, KVBackendRedis, KVBackendPostgres:
	default:
		log.Printf("Warning: Invalid value for KV_BACKEND ('%s'). Defaulting to %s.\n", cfg.KVBackend, KVBackendFile)
		cfg.KVBackend = KVBackendFile
	}
	if cfg.KVBackend == KVBackendPostgres && cfg.DatabaseURL == "" {
		log.Printf("Warning: KV_BACKEND is postgres but PGSQL_URL is not set. Falling back to %s.\n", KVBackendFile)
		cfg.KVBackend = KVBackendFile
	}
	cfg.KVFilePath = viper.GetString("KV_FILE_PATH")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.RedisTTL = durationOr("REDIS_TTL", 0)

	cfg.KafkaBrokers = listOf("KAFKA_BROKERS")
	cfg.KafkaNotificationTopic = viper.GetString("KAFKA_NOTIFICATION_TOPIC")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.ReceiptLocale = viper.GetString("RECEIPT_LOCALE")
	cfg.DevHostnames = listOf("DEV_HOSTNAMES")
	cfg.CORSAllowedOrigins = listOf("CORS_ALLOWED_ORIGINS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.ReferenceCacheTTL = durationOr("REFERENCE_CACHE_TTL", 5*time.Minute)

	return cfg, nil
}

// durationOr parses key with time.ParseDuration, warning and returning def on a bad value.
func durationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// listOf splits a comma separated value, dropping blanks.
func listOf(key string) []string {
	var out []string
	for _, part := range strings.Split(viper.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
