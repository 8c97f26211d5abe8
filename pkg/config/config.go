package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ledgewood/inventory/pkg/domain/entities"
)

// Config groups the application configuration, read via Viper from the
// environment and optionally from a .env file.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Packing PackingConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// PackingConfig holds the fallback packing constants substituted for
// layered variants that leave theirs unset.
type PackingConfig struct {
	DefaultFeetPerLayer    string
	DefaultLayersPerPallet int64
}

// Spec converts the configured defaults into a packing spec.
func (c PackingConfig) Spec() (entities.PackingSpec, error) {
	feet, err := decimal.NewFromString(c.DefaultFeetPerLayer)
	if err != nil {
		return entities.PackingSpec{}, fmt.Errorf("invalid default feet per layer %q: %w", c.DefaultFeetPerLayer, err)
	}
	return entities.NewPackingSpec(feet, c.DefaultLayersPerPallet)
}

// Load reads configuration from environment variables, with an optional
// .env file as a lower-priority source. Expected names: APP_ENV, APP_NAME,
// LOG_LEVEL, PACKING_DEFAULT_FEET_PER_LAYER, PACKING_DEFAULT_LAYERS_PER_PALLET.
func Load() (*Config, error) {
	v := viper.New()

	// Optional .env file; missing is fine
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "stockproj"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Packing: PackingConfig{
			DefaultFeetPerLayer:    getString(v, "PACKING_DEFAULT_FEET_PER_LAYER", "100"),
			DefaultLayersPerPallet: int64(getInt(v, "PACKING_DEFAULT_LAYERS_PER_PALLET", 10)),
		},
	}

	if _, err := cfg.Packing.Spec(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
