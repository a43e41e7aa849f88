package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Host         string
	Port         int
	PortScan     int
	DataDir      string
	StoreDriver  string
	DBPath       string
	StaticDir    string
	RateLimit    int
	StrictLabels bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	num := func(k string, def int) int {
		v := get(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("[cfg] %s=%q is not a number, using %d", k, v, def)
			return def
		}
		return n
	}

	cfg := AppConfig{
		Host:         get("HOST", "0.0.0.0"),
		Port:         num("PORT", 5000),
		PortScan:     num("PORT_SCAN", 10),
		DataDir:      get("DATA_DIR", "data"),
		StoreDriver:  get("STORE_DRIVER", "json"),
		DBPath:       get("DB_PATH", "farm.db"),
		StaticDir:    get("STATIC_DIR", "."),
		RateLimit:    num("RATE_LIMIT", 20),
		StrictLabels: get("STRICT_LABELS", "false") == "true",
	}
	if cfg.StoreDriver != "json" && cfg.StoreDriver != "sqlite" {
		log.Printf("[cfg] unknown STORE_DRIVER %q, using json", cfg.StoreDriver)
		cfg.StoreDriver = "json"
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
