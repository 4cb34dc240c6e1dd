package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/txledger/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	envHTTPAddress        = "HTTP_ADDRESS"
	envDatabaseDSN        = "DATABASE_DSN"
	envSecretKey          = "SECRET_KEY"
	envSessionMode        = "SESSION_MODE"
	envSessionValidity    = "SESSION_VALIDITY"
	envCookieSecure       = "COOKIE_SECURE"
	envCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	envGinMode            = "GIN_MODE"
	envBcryptCost         = "BCRYPT_COST"
	envShutdownTimeout    = "SHUTDOWN_TIMEOUT"
	envLogLevel           = "LOG_LEVEL"
)

// parseEnv overlays config with environment variables. A dotenv file given
// with -env is loaded first (and must exist); otherwise ./.env is loaded
// when present. Variables already set in the process win over the file.
// Malformed numeric, boolean or duration values are ignored.
func parseEnv(config *Config) {
	loadEnvFile()

	config.EndpointAddrHTTP = getEnv(envHTTPAddress, config.EndpointAddrHTTP)
	config.DatabaseDSN = getEnv(envDatabaseDSN, config.DatabaseDSN)
	config.SecretKey = getEnv(envSecretKey, config.SecretKey)
	config.SessionMode = getEnv(envSessionMode, config.SessionMode)
	config.SessionValidityDuration = getEnvAsDuration(envSessionValidity, config.SessionValidityDuration)
	config.CookieSecure = getEnvAsBool(envCookieSecure, config.CookieSecure)
	config.CORSAllowedOrigins = getEnv(envCORSAllowedOrigins, config.CORSAllowedOrigins)
	config.GinMode = getEnv(envGinMode, config.GinMode)
	config.BcryptCost = getEnvAsInt(envBcryptCost, config.BcryptCost)
	config.ShutdownTimeout = getEnvAsDuration(envShutdownTimeout, config.ShutdownTimeout)
	config.LogLevel = getEnv(envLogLevel, config.LogLevel)
}

func loadEnvFile() {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	_ = godotenv.Load(".env")
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
