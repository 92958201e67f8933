// Package config loads the suite's environment settings and test-data
// fixtures (users, approver tables, request templates).
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config stores environment-driven settings for the suite.
type Config struct {
	BaseURL  string `env:"BASE_URL" envDefault:"https://paynova-uat.interseguro.com.pe"`
	LoginURL string `env:"LOGIN_URL" envDefault:"https://paynova-uat.interseguro.com.pe/login"`

	Headless bool          `env:"HEADLESS" envDefault:"true"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"60s"`
	SlowMo   time.Duration `env:"SLOW_MO" envDefault:"100ms"`

	// StoreDriver selects the correlation backend: "file" or "sqlite".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	StorePath   string `env:"STORE_PATH" envDefault:"test-data/solicitudes-creadas.json"`

	DataDir  string `env:"DATA_DIR" envDefault:"test-data"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env.<ENV> (defaulting to uat) with override semantics, then
// .env as a base layer, and parses the environment into a Config. Missing
// env files are not an error; the defaults above apply.
func Load() (Config, error) {
	environment := os.Getenv("ENV")
	if environment == "" {
		environment = "uat"
	}

	_ = godotenv.Overload(".env." + environment)
	_ = godotenv.Load()

	return env.ParseAs[Config]()
}
