package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session tokens
	SessionSecret string
	SessionTTL    time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Route gate targets
	SignInPath  string
	LandingPath string

	// External base URL for OAuth redirect URIs
	BaseURL string

	// OAuth providers
	Providers map[string]ProviderConfig

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

// ProviderConfig describes one external OAuth provider. Loaded once at
// startup and validated for completeness before first use.
type ProviderConfig struct {
	Name         string
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Scopes       []string
}

// Configured reports whether the provider has credentials set.
func (p ProviderConfig) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// Validate checks that a configured provider has every endpoint it needs.
func (p ProviderConfig) Validate() error {
	if !p.Configured() {
		return nil
	}
	if p.AuthURL == "" || p.TokenURL == "" || p.UserInfoURL == "" {
		return fmt.Errorf("oauth provider %s: missing endpoint configuration", p.Name)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "cardvault"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "cardvault"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		SessionSecret: getenv("SESSION_SECRET", "devsessionsecret"),
		SessionTTL:    getdur("SESSION_TTL", 24*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", "localhost"),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		SignInPath:  getenv("SIGNIN_PATH", "/auth/signin"),
		LandingPath: getenv("LANDING_PATH", "/dashboard"),

		BaseURL: getenv("BASE_URL", "http://localhost:8080"),

		Providers: map[string]ProviderConfig{
			"github": {
				Name:         "GitHub",
				ClientID:     getenv("OAUTH_GITHUB_CLIENT_ID", ""),
				ClientSecret: getenv("OAUTH_GITHUB_CLIENT_SECRET", ""),
				AuthURL:      getenv("OAUTH_GITHUB_AUTH_URL", "https://github.com/login/oauth/authorize"),
				TokenURL:     getenv("OAUTH_GITHUB_TOKEN_URL", "https://github.com/login/oauth/access_token"),
				UserInfoURL:  getenv("OAUTH_GITHUB_USERINFO_URL", "https://api.github.com/user"),
				Scopes:       []string{"read:user", "user:email"},
			},
			"google": {
				Name:         "Google",
				ClientID:     getenv("OAUTH_GOOGLE_CLIENT_ID", ""),
				ClientSecret: getenv("OAUTH_GOOGLE_CLIENT_SECRET", ""),
				AuthURL:      getenv("OAUTH_GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
				TokenURL:     getenv("OAUTH_GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
				UserInfoURL:  getenv("OAUTH_GOOGLE_USERINFO_URL", "https://openidconnect.googleapis.com/v1/userinfo"),
				Scopes:       []string{"openid", "email", "profile"},
			},
		},

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// Validate checks configuration completeness before first use.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	for _, p := range c.Providers {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
