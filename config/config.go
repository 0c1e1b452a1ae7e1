package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	CORS     CORSConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type UpstreamConfig struct {
	URL string
}

type CORSConfig struct {
	Origin string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret       string
	Expiry       time.Duration
	SeedEmail    string
	SeedPassword string
	SeedOperator string
}

// ErrUpstreamURLMissing aborts startup: the relay has no degraded mode
// without a backend to forward to.
var ErrUpstreamURLMissing = errors.New("UPSTREAM_URL is not configured")

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine when everything comes from the environment.
	_ = viper.ReadInConfig()

	upstreamURL := viper.GetString("UPSTREAM_URL")
	if upstreamURL == "" {
		return nil, ErrUpstreamURLMissing
	}

	port := viper.GetString("APP_PORT")
	if port == "" {
		port = "3000"
	}

	origin := viper.GetString("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	sessionExpiry, err := time.ParseDuration(viper.GetString("SESSION_EXPIRY"))
	if err != nil {
		sessionExpiry = 12 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: port,
			Env:  viper.GetString("APP_ENV"),
		},
		Upstream: UpstreamConfig{
			URL: upstreamURL,
		},
		CORS: CORSConfig{
			Origin: origin,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:       viper.GetString("SESSION_SECRET"),
			Expiry:       sessionExpiry,
			SeedEmail:    viper.GetString("SEED_OPERATOR_EMAIL"),
			SeedPassword: viper.GetString("SEED_OPERATOR_PASSWORD"),
			SeedOperator: viper.GetString("SEED_OPERATOR_NAME"),
		},
	}

	return config, nil
}
