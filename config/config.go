package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting. Load once in main after
// godotenv has populated the process environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"milongadb"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"change_me_in_production"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	BackendURL  string `env:"BACKEND_URL" envDefault:"http://localhost:8080"`

	PayPalAPI    string `env:"PAYPAL_API" envDefault:"https://api-m.sandbox.paypal.com"`
	PayPalClient string `env:"PAYPAL_API_CLIENT"`
	PayPalSecret string `env:"PAYPAL_API_SECRET"`

	MercadoPagoAPI   string `env:"MP_API" envDefault:"https://api.mercadopago.com"`
	MercadoPagoToken string `env:"MP_ACCESS_TOKEN"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM"`
}

var C Config

func Load() (*Config, error) {
	if err := env.Parse(&C); err != nil {
		return nil, err
	}
	return &C, nil
}
