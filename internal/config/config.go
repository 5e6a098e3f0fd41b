package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	// one store read per tree node, live data
	TreeStrategyPerNode = "per_node"
	// one full-table read, folded in memory
	TreeStrategySnapshot = "snapshot"
)

type Config struct {
	Env   string
	Port  int
	DBURL string
	Store string

	TreeStrategy string
	// applies to both tree strategies, 0 means unlimited
	TreeMaxDepth int

	// per request budget for store calls
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	CORSAllowedOrigins []string

	// proxies whose X-Forwarded-For is honoured, IPs or CIDRs; none by default
	TrustedProxies []string

	OTLPEndpoint     string
	TraceSampleRatio float64
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),
		Store: getEnv("STORE", StorePostgres),

		TreeStrategy: getEnv("CATEGORY_TREE_STRATEGY", TreeStrategyPerNode),
		TreeMaxDepth: getEnvInt("CATEGORY_TREE_MAX_DEPTH", 0),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 5000)) * time.Millisecond,
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		TrustedProxies:     splitList(getEnv("TRUSTED_PROXIES", "")),

		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceSampleRatio: getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),
	}
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store)
	}

	switch c.TreeStrategy {
	case TreeStrategyPerNode, TreeStrategySnapshot:
	default:
		return fmt.Errorf("CATEGORY_TREE_STRATEGY must be %q or %q, got %q", TreeStrategyPerNode, TreeStrategySnapshot, c.TreeStrategy)
	}

	if c.TreeMaxDepth < 0 {
		return fmt.Errorf("CATEGORY_TREE_MAX_DEPTH must not be negative")
	}

	if c.Port <= 0 {
		return fmt.Errorf("PORT must be positive")
	}

	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}

	return nil
}

func buildDBURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "categoryhub")
	pass := getEnv("DB_PASSWORD", "categoryhub")
	name := getEnv("DB_NAME", "categoryhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %s=%q is not an integer, using %d\n", key, v, fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)

		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %s=%q is not a number, using %v\n", key, v, fallback)
			return fallback
		}

		return f
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
