package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Env holds process configuration loaded once at startup.
type Env struct {
	AppAddr            string
	GinMode            string
	Environment        string // "development" or "production"
	DBDSN              string
	JWTSecret          string
	TokenTTL           time.Duration
	BcryptCost         int
	CORSAllowedOrigins []string
}

// IsProduction reports whether error responses must omit internal detail.
func (e Env) IsProduction() bool {
	return e.Environment == "production"
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	environment := strings.TrimSpace(os.Getenv("APP_ENV"))
	if environment == "" {
		environment = "development"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/cafe_admin?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	cost := bcrypt.DefaultCost
	if raw := strings.TrimSpace(os.Getenv("BCRYPT_COST")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= bcrypt.MinCost && n <= bcrypt.MaxCost {
			cost = n
		}
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		Environment:        environment,
		DBDSN:              dsn,
		JWTSecret:          secret,
		TokenTTL:           ttl,
		BcryptCost:         cost,
		CORSAllowedOrigins: origins,
	}
}
