package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// Academic email suffixes accepted by the issuer (lower-cased, with dot).
	AcademicSuffixes []string

	// DebugFallback explicitly enables plaintext code storage when delivery
	// fails. Never enable in production.
	DebugFallback bool

	SweepSchedule string // cron spec for the expiry sweep

	SMTPHost       string
	SMTPPort       int
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPEncryption string // "starttls" | "ssl" | "none"

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryMinutes  int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each record type.
type DynamoTables struct {
	EmailOtps      string
	EmailOtpsDebug string
	Universities   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			EmailOtps:      getEnv("DYNAMO_TABLE_EMAIL_OTPS", "email_otps"),
			EmailOtpsDebug: getEnv("DYNAMO_TABLE_EMAIL_OTPS_DEBUG", "email_otps_debug"),
			Universities:   getEnv("DYNAMO_TABLE_UNIVERSITIES", "universities"),
		},

		AcademicSuffixes: strings.Split(getEnv("OTP_ACADEMIC_SUFFIXES", ".edu"), ","),
		DebugFallback:    getEnvBool("OTP_DEBUG_FALLBACK", false),
		SweepSchedule:    getEnv("OTP_SWEEP_SCHEDULE", "@every 1h"),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@campustrade.app"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPEncryption: getEnv("SMTP_ENCRYPTION", "starttls"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryMinutes:  getEnvInt("JWT_EXPIRY_MINUTES", 60),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
