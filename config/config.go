package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DBPath         string
	JWTSecret      string
	WeatherAPIKey  string
	WeatherBaseURL string
	MLEndpoint     string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file found: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "farming.db"),
		JWTSecret:      get("JWT_SECRET", "krishi_dev_secret_change_in_prod"),
		WeatherAPIKey:  get("WEATHER_API_KEY", ""),
		WeatherBaseURL: get("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		MLEndpoint:     get("ML_ENDPOINT", ""),
	}
	log.Printf("[cfg] port=%s db=%s weather=%t ml=%t",
		cfg.Port, cfg.DBPath, cfg.WeatherAPIKey != "", cfg.MLEndpoint != "")
	return cfg
}
