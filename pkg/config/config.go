package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing is returned when environment variables cannot be parsed into the target struct.
var ErrParsing = errors.New("config: failed to parse environment")

var dotenvOnce sync.Once

func loadDotenv() {
	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside local development.
		_ = godotenv.Load()
	})
}

// Load fills dst, a pointer to a struct, from the environment.
func Load(dst any) error {
	loadDotenv()
	if err := env.Parse(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}
	return nil
}

// LoadWithPrefix is like Load but prepends prefix to every variable name.
func LoadWithPrefix(dst any, prefix string) error {
	loadDotenv()
	if err := env.ParseWithOptions(dst, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}
	return nil
}

// MustLoad is like Load but panics on error. Intended for program startup.
func MustLoad(dst any) {
	if err := Load(dst); err != nil {
		panic(err)
	}
}
