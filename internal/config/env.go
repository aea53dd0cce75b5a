package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	DriverPassword    string

	SignatureDir  string
	PublicBaseURL string
	ReferenceFile string

	CORSOrigins []string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBDSN: getEnv("DB_DSN",
			"root:@tcp(127.0.0.1:3306)/brooks_portal?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),

		JWTSecret:         getEnv("JWT_SECRET", "change-me-before-deploy"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "brookswaste"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		DriverPassword:    strings.TrimSpace(os.Getenv("DRIVER_PASSWORD")),

		SignatureDir:  getEnv("SIGNATURE_DIR", "data/signatures"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080/files/signatures"),
		ReferenceFile: strings.TrimSpace(os.Getenv("REFERENCE_FILE")),

		CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
