// Package config loads server and session settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAddr         = "FORMCALC_ADDR"
	EnvLocale       = "FORMCALC_LOCALE"
	EnvTheme        = "FORMCALC_THEME"
	EnvThemeVariant = "FORMCALC_THEME_VARIANT"
	EnvRateLimit    = "FORMCALC_RATE_LIMIT"
	EnvRateBurst    = "FORMCALC_RATE_BURST"
	EnvLocalesDir   = "FORMCALC_LOCALES_DIR"
)

// Config holds the resolved settings.
type Config struct {
	Addr         string
	Locale       string
	Theme        string
	ThemeVariant string
	RateLimit    float64
	RateBurst    int
	LocalesDir   string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:         ":8080",
		Locale:       "en",
		ThemeVariant: "light",
		RateLimit:    5,
		RateBurst:    10,
	}
}

// Load reads the given .env files (".env" when none are named) and then the
// process environment. Missing .env files are ignored; malformed ones are not.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves settings through lookup, falling back to Default.
func FromEnv(lookup func(string) string) (Config, error) {
	def := Default()
	cfg := Config{
		Addr:         getEnv(lookup, EnvAddr, def.Addr),
		Locale:       getEnv(lookup, EnvLocale, def.Locale),
		Theme:        getEnv(lookup, EnvTheme, def.Theme),
		ThemeVariant: getEnv(lookup, EnvThemeVariant, def.ThemeVariant),
		LocalesDir:   getEnv(lookup, EnvLocalesDir, def.LocalesDir),
	}

	var err error
	if cfg.RateLimit, err = getFloat(lookup, EnvRateLimit, def.RateLimit); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = getInt(lookup, EnvRateBurst, def.RateBurst); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: address is required")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: %s must not be negative", EnvRateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("config: %s must be at least 1", EnvRateBurst)
	}
	return nil
}

func getEnv(lookup func(string) string, k, def string) string {
	if v := strings.TrimSpace(lookup(k)); v != "" {
		return v
	}
	return def
}

func getFloat(lookup func(string) string, k string, def float64) (float64, error) {
	raw := getEnv(lookup, k, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s: %w", k, err)
	}
	return v, nil
}

func getInt(lookup func(string) string, k string, def int) (int, error) {
	raw := getEnv(lookup, k, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s: %w", k, err)
	}
	return v, nil
}
