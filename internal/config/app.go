package config

import "fmt"

// AppConfig — настройки HTTP-сервера, платёжного провайдера и генератора
// слотов. Всё читается из окружения (.env подхватывается в main).
type AppConfig struct {
	HTTPAddr string

	// Секрет для проверки JWT от identity-сервиса.
	JWTSecret string

	StripeSecretKey     string
	StripeWebhookSecret string
	// Валюта платежей (ISO 4217 в нижнем регистре, как у Stripe).
	Currency string
	// Комиссия площадки в процентах от суммы записи.
	CommissionPercent float64

	// Горизонт генерации слотов в днях.
	SlotHorizonDays int

	AllowedOrigins []string
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		Currency:            getEnv("PAYMENT_CURRENCY", "eur"),
		CommissionPercent:   getEnvFloat("COMMISSION_PERCENT", 10),
		SlotHorizonDays:     getEnvInt("SLOT_HORIZON_DAYS", 14),
		AllowedOrigins:      getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("invalid app config: JWT_SECRET must be set")
	}
	if cfg.CommissionPercent < 0 || cfg.CommissionPercent > 100 {
		return nil, fmt.Errorf("invalid app config: COMMISSION_PERCENT must be in 0..100")
	}

	return cfg, nil
}
