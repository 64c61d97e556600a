package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	// Fraction of every paid enrollment retained by the platform.
	CommissionRate float64

	AllowOrigins string

	// JaaS (video conferencing) credentials for room access tokens
	JaaSAppID      string
	JaaSKid        string
	JaaSPrivateKey string

	SendgridAPIKey string
	EmailSender    string

	LocalTextApi    string
	LocalTextApiUrl string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "5000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		CommissionRate: getEnvFloat("COMMISSION_RATE", 0.20),

		AllowOrigins: getEnv("ALLOW_ORIGINS", "http://localhost:5173"),

		JaaSAppID:      getEnv("JAAS_APP_ID", ""),
		JaaSKid:        getEnv("JAAS_KID", ""),
		JaaSPrivateKey: getEnv("JAAS_PRIVATE_KEY", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@tutorme.io"),

		LocalTextApi:    getEnv("LOCAL_SMS_API_KEY", ""),
		LocalTextApiUrl: getEnv("LOCAL_SMS_API_URL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.CommissionRate < 0 || AppConfig.CommissionRate >= 1 {
		log.Printf("Warning: COMMISSION_RATE %v out of range, falling back to 0.20", AppConfig.CommissionRate)
		AppConfig.CommissionRate = 0.20
	}
	if AppConfig.JaaSPrivateKey == "" {
		log.Println("Warning: JAAS_PRIVATE_KEY not set. Video room tokens will not be issued.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvFloat retrieves an environment variable as a float or returns the default float value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
