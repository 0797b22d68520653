package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates service configuration. Values come from an optional
// YAML file with environment variable overrides; CLI flags in cmd layer on
// top of the loaded result.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`

	// CatalogPath points at a YAML material catalog; empty means the
	// built-in default library.
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH" env-default:""`

	Optimizer Optimizer `yaml:"optimizer"`
	Pricing   Pricing   `yaml:"pricing"`
	RateLimit RateLimit `yaml:"rate_limit"`
}

type HTTPServer struct {
	Address             string        `yaml:"address" env:"ADDRESS" env-default:":8080"`
	Timeout             time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout         time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period" env-default:"10s"`
	EnableRequestLog    bool          `yaml:"enable_request_log" env-default:"true"`
}

// Optimizer holds the default packing options used when a request does not
// carry its own config.
type Optimizer struct {
	Strategy          string  `yaml:"strategy" env:"STRATEGY" env-default:"bottom-left-fill"`
	KerfMm            float64 `yaml:"kerf_mm" env:"KERF_MM" env-default:"3"`
	AllowRotation     bool    `yaml:"allow_rotation" env:"ALLOW_ROTATION" env-default:"true"`
	MaxFreeRectangles int     `yaml:"max_free_rectangles" env-default:"256"`
}

// Pricing holds the default cost factors used when a request does not carry
// its own.
type Pricing struct {
	WasteFactor    float64 `yaml:"waste_factor" env-default:"0.15"`
	LaborFactor    float64 `yaml:"labor_factor" env-default:"0.30"`
	OverheadFactor float64 `yaml:"overhead_factor" env-default:"0.10"`
	MarginFactor   float64 `yaml:"margin_factor" env-default:"0.20"`
}

type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"25"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"50"`
}

// Load reads configuration from the given YAML file, or from environment
// variables and defaults alone when path is empty.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate limit rps must be >= 0")
	}
	if c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit burst must be >= 0")
	}
	if c.Optimizer.KerfMm < 0 {
		return fmt.Errorf("kerf must be >= 0")
	}
	if c.Optimizer.MaxFreeRectangles <= 0 {
		return fmt.Errorf("max free rectangles must be > 0")
	}
	return nil
}
