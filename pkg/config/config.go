package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Composer modes
const (
	ModeAll        = "all"
	ModeFirst      = "first"
	ModeBestEffort = "besteffort"
)

type Config struct {
	Env  string
	Port int

	Log      LogConfig
	Composer ComposerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// ComposerConfig holds the defaults applied to requests that do not set their own
type ComposerConfig struct {
	Mode       string
	Limit      int
	StepBudget uint64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile bypasses the search path, so a missing .env arrives as fs.ErrNotExist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:  v.GetString("ENV"),
		Port: v.GetInt("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Composer: ComposerConfig{
			Mode:       normalizeMode(v.GetString("COMPOSER_MODE")),
			Limit:      max(v.GetInt("COMPOSER_LIMIT"), 0),
			StepBudget: v.GetUint64("COMPOSER_STEP_BUDGET"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("COMPOSER_MODE", ModeAll)
	v.SetDefault("COMPOSER_LIMIT", 0)
	v.SetDefault("COMPOSER_STEP_BUDGET", 0)
}

// Unknown modes fall back to the exhaustive search
func normalizeMode(raw string) string {
	switch mode := strings.ToLower(strings.TrimSpace(raw)); mode {
	case ModeAll, ModeFirst, ModeBestEffort:
		return mode
	default:
		return ModeAll
	}
}
