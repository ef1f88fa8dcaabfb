package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the dashboard API.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	DeveloperToken string
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	MCCCustomerID  string
	APIEndpoint    string
	APIVersion     string

	ReportCacheTTL  time.Duration
	RedisURL        string
	JWTSecret       string
	RegistryPath    string
	FanoutWorkers   int
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ADS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Ads Dashboard API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("google.endpoint", "https://googleads.googleapis.com")
	v.SetDefault("google.api_version", "v17")
	v.SetDefault("report.cache_ttl", "5m")
	v.SetDefault("mcc.fanout_workers", 4)
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")

	ttl, err := time.ParseDuration(v.GetString("report.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid report cache ttl: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("rate_limit.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DeveloperToken:  v.GetString("google.developer_token"),
		ClientID:        v.GetString("google.client_id"),
		ClientSecret:    v.GetString("google.client_secret"),
		RefreshToken:    v.GetString("google.refresh_token"),
		MCCCustomerID:   v.GetString("google.mcc_customer_id"),
		APIEndpoint:     strings.TrimRight(v.GetString("google.endpoint"), "/"),
		APIVersion:      v.GetString("google.api_version"),
		ReportCacheTTL:  ttl,
		RedisURL:        v.GetString("redis.url"),
		JWTSecret:       v.GetString("jwt.secret"),
		RegistryPath:    v.GetString("registry.path"),
		FanoutWorkers:   v.GetInt("mcc.fanout_workers"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: window,
	}

	if cfg.DeveloperToken == "" || cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return Config{}, fmt.Errorf("google ads credentials must be provided")
	}

	mcc, err := NormalizeCustomerID(cfg.MCCCustomerID)
	if err != nil {
		return Config{}, fmt.Errorf("invalid mcc customer id: %w", err)
	}
	cfg.MCCCustomerID = mcc

	if cfg.FanoutWorkers <= 0 {
		cfg.FanoutWorkers = 4
	}

	return cfg, nil
}

// NormalizeCustomerID strips dashes from a customer id and validates the
// ten-digit form Google Ads uses.
func NormalizeCustomerID(id string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(cleaned) != 10 {
		return "", fmt.Errorf("customer id must be 10 digits, got %q", id)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("customer id must be numeric, got %q", id)
		}
	}
	return cleaned, nil
}
