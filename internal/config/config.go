package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                   string
	StoreDriver           string
	MongoURI              string
	MongoDB               string
	ServerAddr            string
	FrontendOrigin        string
	RateLimitAppointments int
	RateLimitConsultant   int
	RateLimitWindowSec    int
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	CacheTTLSeconds       int
	AdminAPIKey           string
	AdminPasswordHash     string
	MasterAdminEmail      string
	JWTSecret             string
	AccessTTLMinutes      int
	RefreshTTLMinutes     int
	CookieSecure          bool
	GeminiAPIKey          string
	GeminiModel           string
	WhatsAppNumber        string
	BrevoAPIKey           string
	BrevoSenderEmail      string
	BrevoSenderName       string
	BrevoSandbox          bool
	Timezone              *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("TZ", "Europe/Madrid"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		StoreDriver:           getEnv("STORE_DRIVER", "mongo"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017/peluqueria"),
		MongoDB:               getEnv("MONGO_DB", "peluqueria"),
		ServerAddr:            getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigin:        getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		RateLimitAppointments: getEnvInt("RATE_LIMIT_APPOINTMENTS", 10),
		RateLimitConsultant:   getEnvInt("RATE_LIMIT_CONSULTANT", 5),
		RateLimitWindowSec:    getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds:       getEnvInt("CACHE_TTL_SECONDS", 60),
		AdminAPIKey:           getEnv("ADMIN_API_KEY", ""),
		AdminPasswordHash:     getEnv("ADMIN_PASSWORD_HASH", ""),
		MasterAdminEmail:      getEnv("MASTER_ADMIN_EMAIL", "soni.gb.2o@hotmail.com"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		AccessTTLMinutes:      getEnvInt("ACCESS_TTL_MINUTES", 15),
		RefreshTTLMinutes:     getEnvInt("REFRESH_TTL_MINUTES", 43200),
		CookieSecure:          getEnv("COOKIE_SECURE", "false") == "true",
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		WhatsAppNumber:        getEnv("WHATSAPP_NUMBER", "34600000000"),
		BrevoAPIKey:           getEnv("BREVO_API_KEY", ""),
		BrevoSenderEmail:      getEnv("BREVO_SENDER_EMAIL", ""),
		BrevoSenderName:       getEnv("BREVO_SENDER_NAME", ""),
		BrevoSandbox:          getEnv("BREVO_SANDBOX", "false") == "true",
		Timezone:              loc,
	}

	return cfg, nil
}
