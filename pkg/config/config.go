package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is built once at startup and
// passed into constructors; nothing mutates it afterwards.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	FrontendBaseURL string

	// External fitness provider (Strava)
	StravaClientID     string `mapstructure:"STRAVA_CLIENT_ID"`
	StravaClientSecret string `mapstructure:"STRAVA_CLIENT_SECRET"`
	StravaRedirectURL  string `mapstructure:"STRAVA_REDIRECT_URL"`
	StravaHTTPTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "training-log-app")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("STRAVA_CLIENT_ID", "")
	viper.SetDefault("STRAVA_CLIENT_SECRET", "")
	viper.SetDefault("STRAVA_REDIRECT_URL", "")
	viper.SetDefault("STRAVA_HTTP_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.StravaClientID = viper.GetString("STRAVA_CLIENT_ID")
	cfg.StravaClientSecret = viper.GetString("STRAVA_CLIENT_SECRET")
	cfg.StravaRedirectURL = viper.GetString("STRAVA_REDIRECT_URL")

	stravaTimeoutStr := viper.GetString("STRAVA_HTTP_TIMEOUT")
	stravaTimeout, err := time.ParseDuration(stravaTimeoutStr)
	if err != nil {
		stravaTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for STRAVA_HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", stravaTimeoutStr, stravaTimeout.String())
	}
	cfg.StravaHTTPTimeout = stravaTimeout

	// Log warnings for missing critical OAuth ENV variables
	if cfg.StravaClientID == "" {
		log.Println("Warning: STRAVA_CLIENT_ID not set. Strava integration will not function.")
	}
	if cfg.StravaClientSecret == "" {
		log.Println("Warning: STRAVA_CLIENT_SECRET not set. Strava integration will not function.")
	}
	if cfg.StravaRedirectURL == "" {
		log.Println("Warning: STRAVA_REDIRECT_URL not set. Strava integration will not function.")
	}

	return cfg, nil
}
