package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Slot politikası: işletmenin günlük çalışma penceresi.
	// Bitiş başlangıçtan büyük değilse pencere gece yarısını aşar
	// (ör: 10:00 - 02:00; eşit uçlar 24 saat demektir).
	SlotWindowStart string
	SlotWindowEnd   string

	// Twilio (boş bırakılırsa bildirimler sadece loglanır)
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioPhoneNumber  string
	TwilioWhatsAppFrom string
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce geç (prod'da env doğrudan gelir)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=partievi port=5432 sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		SlotWindowStart: getEnv("SLOT_WINDOW_START", "10:00"),
		SlotWindowEnd:   getEnv("SLOT_WINDOW_END", "02:00"),

		TwilioAccountSID:   getEnv("TWILIO_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:  getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", "+14155238886"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		logrus.Fatal("JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.TwilioAccountSID == "" {
		logrus.Warn("TWILIO_SID tanımlı değil, bildirimler sadece loglanacak.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		logrus.Warn("CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
