package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Account creation and login (brute-force protection)
		{Path: "/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/auth/password", Method: "PUT", Limit: 20, Window: time.Hour, Burst: 5},

		// Tier 2: Matching and availability queries (moderate limits)
		{Path: "/match", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/match/report", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/plumbers/available", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Tier 3: Write operations
		{Path: "/bookings", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/bookings/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/reviews", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/admin/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/admin/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/admin/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Read operations fall through to the default limit; the health
		// check is unlimited via a special case in the matcher.
	}
}

// Env lookup helpers. Unset or unparseable values fall back to the default.

func getEnvString(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

// parseIPList parses a comma-separated list of client IDs into a set.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
