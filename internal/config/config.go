package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort         string
	DBDSN           string
	JWTSecret       string
	SessionDays     int
	RememberDays    int
	RedisAddr       string
	RedisPassword   string
	AWSRegion       string
	AWSAccessKey    string
	AWSSecretKey    string
	S3Bucket        string
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func Load() Config {
	sessionDays, _ := strconv.Atoi(get("SESSION_DAYS", "7"))
	rememberDays, _ := strconv.Atoi(get("SESSION_REMEMBER_DAYS", "30"))
	return Config{
		AppPort:         get("APP_PORT", "8080"),
		DBDSN:           must("DB_DSN"),
		JWTSecret:       must("JWT_SECRET"),
		SessionDays:     sessionDays,
		RememberDays:    rememberDays,
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		AWSRegion:       get("AWS_REGION", "us-east-1"),
		AWSAccessKey:    get("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    get("AWS_SECRET_ACCESS_KEY", ""),
		S3Bucket:        get("S3_BUCKET", "edithub-documents"),
		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
