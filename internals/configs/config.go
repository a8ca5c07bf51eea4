package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config menampung seluruh konfigurasi aplikasi.
// Dibangun sekali di main lalu dipass eksplisit ke komponen yang butuh,
// tidak ada global mutable dari env.
type Config struct {
	Port            string
	JWTSecret       string
	GoogleClientID  string
	DatabaseDSN     string
	UploadDir       string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string // mailto: untuk web push
	RateLimitPerMin int
	Env             string // development | production
}

// Load membaca .env (kalau ada) lalu membangun Config dari environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat!")
	}

	cfg := &Config{
		Port:            getenv("PORT", "3000"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber: getenv("VAPID_SUBSCRIBER", "mailto:admin@bimbelku.id"),
		RateLimitPerMin: getenvInt("RATE_LIMIT_PER_MIN", 100),
		Env:             getenv("ENV", "development"),
	}

	sslmode := getenv("DB_SSLMODE", "require")
	cfg.DatabaseDSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=bimbelku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET belum diset")
	}
	log.Println("✅ JWT_SECRET berhasil dimuat.")

	if cfg.VAPIDPrivateKey == "" {
		log.Println("⚠️ VAPID keys belum diset, push notification nonaktif")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
