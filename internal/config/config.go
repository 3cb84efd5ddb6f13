// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Server side
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir     string `env:"DATA_DIR" envDefault:"output"`
	ConfigPath  string `env:"CONFIG_PATH" envDefault:"config/hospital_weekday_slots.json"`
	HolidayPath string `env:"HOLIDAY_TABLE" envDefault:""`

	// Client side
	BackendURL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	RetryCount     int           `env:"RETRY_COUNT" envDefault:"2"`

	// Domain defaults
	DefaultMaxAssignments int    `env:"DEFAULT_MAX_ASSIGNMENTS" envDefault:"2"`
	UniversityHospital    string `env:"UNIVERSITY_HOSPITAL" envDefault:"大学病院"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
