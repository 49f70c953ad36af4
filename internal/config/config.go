package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl      string
	ServerPort string

	JWTSecret               string
	JWTAlgorithm            string
	AccessTokenExpireMin    int
	ResetTokenExpireMin     int
	ActivationTokenExpireHr int

	FirstAdminEmail    string
	FirstAdminPassword string
	FirstVetEmail      string
	FirstVetPassword   string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string

	FrontendURL string

	ModelDir string

	RedisURL string

	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretAccess string
	S3Bucket        string

	Testing bool
}

func Load() *Config {
	// .env é opcional; em produção tudo vem do ambiente.
	_ = godotenv.Load()

	return &Config{
		DBUrl:      databaseURL(),
		ServerPort: getEnv("SERVER_PORT", "8000"),

		JWTSecret:               getEnv("JWT_SECRET", "changeme"),
		JWTAlgorithm:            getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenExpireMin:    getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		ResetTokenExpireMin:     getEnvInt("RESET_TOKEN_EXPIRE_MINUTES", 30),
		ActivationTokenExpireHr: getEnvInt("ACTIVATION_TOKEN_EXPIRE_HOURS", 48),

		FirstAdminEmail:    getEnv("FIRST_ADMIN_EMAIL", "admin@dsleish.com"),
		FirstAdminPassword: getEnv("FIRST_ADMIN_PASSWORD", ""),
		FirstVetEmail:      getEnv("FIRST_VET_EMAIL", "infopontes@gmail.com"),
		FirstVetPassword:   getEnv("FIRST_VET_PASSWORD", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@dsleish.com"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "LeishAI"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		ModelDir: getEnv("MODEL_DIR", "ml_models"),

		RedisURL: getEnv("REDIS_URL", ""),

		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:  getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccess: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),

		Testing: getEnv("TESTING", "") == "true",
	}
}

// databaseURL monta a URL a partir de POSTGRES_* quando DATABASE_URL
// não está definida, escapando a senha como a aplicação original fazia.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	user := getEnv("POSTGRES_USER", "leishai")
	pass := getEnv("POSTGRES_PASSWORD", "leishai")
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	name := getEnv("POSTGRES_DB", "leishai_db")

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, url.QueryEscape(pass), host, port, name,
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
