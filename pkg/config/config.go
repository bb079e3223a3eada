package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App AppConfig
	Sim SimConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARTFLOW_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"CARTFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARTFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SimConfig tunes the cartsim demo binary.
type SimConfig struct {
	SeedFile  string        `envconfig:"CARTFLOW_SIM_SEED_FILE"`
	StepDelay time.Duration `envconfig:"CARTFLOW_SIM_STEP_DELAY" default:"0s"`
}
