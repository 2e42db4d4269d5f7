package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         []byte
	CORSOrigins       []string
	RequestTimeoutSec int
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	AppPublicURL      string
	CenterTimezone    string
	SMTPHost          string
	SMTPPort          string
	SMTPUser          string
	SMTPPass          string
	SMTPFromName      string
	SMTPFromEmail     string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		jwtSecret = "default-secret-min-32-chars-required!!"
	}
	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         []byte(jwtSecret),
		CORSOrigins:       origins,
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 30),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
		AppPublicURL:      getEnv("APP_PUBLIC_URL", "http://localhost:3000"),
		CenterTimezone:    getEnv("CENTER_TZ", "Europe/Madrid"),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "1025"),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		SMTPFromName:      getEnv("SMTP_FROM_NAME", "Centro Uveral"),
		SMTPFromEmail:     getEnv("SMTP_FROM_EMAIL", "noreply@localhost"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s=%q is not a number, using %d", k, v, d)
		return d
	}
	return n
}
