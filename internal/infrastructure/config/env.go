package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvService reads settings from the process environment after layering
// .env and .env.$APP_ENV from dir on top of it.
type EnvService struct {
	lookup func(string) (string, bool)
}

// LoadEnv loads the dotenv files from dir. Missing files are not an error;
// a file that exists but cannot be parsed is.
func LoadEnv(dir string) (*EnvService, error) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := loadIfExists(dir, ".env", godotenv.Load); err != nil {
		return nil, err
	}
	if err := loadIfExists(dir, ".env."+appEnv, godotenv.Overload); err != nil {
		return nil, err
	}

	return NewEnvService(os.LookupEnv), nil
}

func loadIfExists(dir, name string, load func(...string) error) error {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := load(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigLoad, path, err)
	}
	return nil
}

func NewEnvService(lookup func(string) (string, bool)) *EnvService {
	return &EnvService{lookup: lookup}
}

func (e *EnvService) Get(key string) string {
	v, _ := e.lookup(key)
	return v
}

func (e *EnvService) Lookup(key string) (string, bool) {
	return e.lookup(key)
}

func (e *EnvService) GetWithDefault(key, defaultValue string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) (bool, error) {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, fmt.Errorf("%s has invalid bool %q: %w", key, v, err)
	}
	return parsed, nil
}

func (e *EnvService) GetDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	return parsed, nil
}
