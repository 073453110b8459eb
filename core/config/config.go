package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing is returned when environment variables cannot be parsed into
// the target struct.
var ErrParsing = errors.New("failed to parse environment variables")

var (
	envOnce sync.Once
	cache   sync.Map // reflect.Type -> any (value of that type)
)

// loadEnvFile loads .env once. A missing file is not an error: the
// environment may be provided by the process supervisor.
func loadEnvFile() {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills cfg from environment variables. The first successful load of
// each type is cached and later calls copy the cached value into cfg.
func Load[T any](cfg *T) error {
	loadEnvFile()

	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return errors.Join(ErrParsing, err)
	}

	actual, _ := cache.LoadOrStore(typ, loaded)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: load %T: %v", *cfg, err))
	}
}

// Reset clears the cache. Intended for tests that change the environment.
func Reset() {
	cache.Clear()
}
