package config

import (
	"log"
	"os"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	Address string `env:"ADDRESS" envDefault:":8081"`
	LogFile string `env:"LOG_FILE" envDefault:"./velora.log"`

	// Document database (catalog, orders, reviews, users, settings).
	MongoURI    string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName string `env:"MONGODB_DBNAME" envDefault:"velora"`

	// Session key/value store: the server-side stand-in for browser local
	// storage (cart, wishlist, preferences, try-on usage).
	SessionDSN string `env:"SESSION_DSN" envDefault:"velora_sessions.db"`

	// Generative AI service.
	AIBaseURL string `env:"AI_BASE_URL" envDefault:"https://generative.example.com"`
	AIAPIKey  string `env:"AI_API_KEY"`
	AIModel   string `env:"AI_MODEL" envDefault:"gemini-2.0-flash"`

	// Checkout handoff.
	WhatsAppPhone string `env:"WHATSAPP_PHONE" envDefault:"212600000000"`

	// Daily cap on virtual try-on generations per session.
	TryOnDailyCap int `env:"TRYON_DAILY_CAP" envDefault:"5"`

	// Quiet period before a stock edit is written through, in milliseconds.
	StockDebounceMs int `env:"STOCK_DEBOUNCE_MS" envDefault:"1000"`
}

// Load reads an optional .env file, then the environment. Missing .env is not
// an error; the defaults above keep a dev instance bootable.
func Load() Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("[config] could not load .env: %v", err)
		}
	}
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[config] parse: %v", err)
	}
	log.Printf("[config] ADDRESS=%s MONGODB_DBNAME=%s SESSION_DSN=%s AI_MODEL=%s",
		cfg.Address, cfg.MongoDBName, cfg.SessionDSN, cfg.AIModel)
	return cfg
}
