package config

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// SettingsHolder serves the settings section of a file and reloads it when
// the file changes.
type SettingsHolder struct {
	current atomic.Value // holds Settings
	logger  *zap.Logger
}

// NewSettingsHolder returns a holder with fixed settings, used when no
// settings file is configured.
func NewSettingsHolder(settings Settings) *SettingsHolder {
	holder := &SettingsHolder{logger: zap.NewNop()}
	holder.current.Store(normalizeSettings(settings))
	return holder
}

// WatchSettings loads the settings section of path and keeps it current.
func WatchSettings(logger *zap.Logger, path string) (*SettingsHolder, error) {
	logger = logging.OrNop(logger)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	settings, err := unmarshalSettings(v)
	if err != nil {
		return nil, err
	}

	holder := &SettingsHolder{logger: logger}
	holder.current.Store(settings)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalSettings(v)
		if err != nil {
			logger.Warn("invalid settings ignored",
				zap.String("op", "config.WatchSettings"),
				zap.String("file", e.Name),
				zap.Error(err),
			)
			return
		}
		holder.current.Store(updated)
		logger.Info("settings reloaded",
			zap.String("op", "config.WatchSettings"),
			zap.String("file", e.Name),
		)
	})

	return holder, nil
}

// Get returns the current settings.
func (h *SettingsHolder) Get() Settings {
	return h.current.Load().(Settings)
}

func unmarshalSettings(v *viper.Viper) (Settings, error) {
	var settings Settings
	if err := v.UnmarshalKey("settings", &settings); err != nil {
		return Settings{}, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := validateSettings(settings); err != nil {
		return Settings{}, err
	}
	return normalizeSettings(settings), nil
}

func validateSettings(settings Settings) error {
	if settings.DefaultInterestRate < 0 {
		return errors.New("settings.defaultInterestRate cannot be negative")
	}
	if settings.DefaultOTAPercent < 0 || settings.DefaultOTAPercent > 100 {
		return errors.New("settings.defaultOtaPercent must be between 0 and 100")
	}
	if settings.TargetCMPercent > 100 {
		return errors.New("settings.targetCmPercent cannot exceed 100")
	}
	return nil
}

func normalizeSettings(settings Settings) Settings {
	if settings.CurrencySymbol == "" {
		settings.CurrencySymbol = DefaultSettings().CurrencySymbol
	}
	return settings
}
