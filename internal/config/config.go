package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/silverfox"`
	MongoDB  string `env:"MONGO_DB"`

	// ClientURL is the public front-end base URL, used to build the Stripe
	// success/cancel redirect targets.
	ClientURL      string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`
	FrontendOrigin string `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`

	UploadsDir string `env:"UPLOADS_DIR" envDefault:"./uploads"`

	RateLimitContact   int `env:"RATE_LIMIT_CONTACT" envDefault:"5"`
	RateLimitWindowSec int `env:"RATE_LIMIT_WINDOW_SEC" envDefault:"60"`

	RedisURL        string `env:"REDIS_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`

	JWTSecret         string `env:"JWT_SECRET"`
	AccessTTLMinutes  int    `env:"ACCESS_TTL_MINUTES" envDefault:"15"`
	RefreshTTLMinutes int    `env:"REFRESH_TTL_MINUTES" envDefault:"43200"`

	BrevoAPIKey      string `env:"BREVO_API_KEY"`
	BrevoSenderEmail string `env:"BREVO_SENDER_EMAIL"`
	BrevoSenderName  string `env:"BREVO_SENDER_NAME"`
	BrevoSandbox     bool   `env:"BREVO_SANDBOX" envDefault:"false"`
	ContactRecipient string `env:"CONTACT_EMAIL" envDefault:"information@silverfoxmedia.co"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	TZ       string         `env:"TZ" envDefault:"America/Los_Angeles"`
	Timezone *time.Location `env:"-"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		return nil, err
	}
	cfg.Timezone = loc

	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "silverfox"
	}

	return cfg, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}
