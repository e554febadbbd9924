package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/seller-atlas/pkg/adapters"
	"github.com/de-tools/seller-atlas/pkg/services/aggregation"
	"github.com/spf13/viper"
)

const EnvPrefix = "SELLER_ATLAS"

type Settings struct {
	DBPath     string `mapstructure:"db_path"`
	Currency   string `mapstructure:"currency"`
	LogLevel   string `mapstructure:"log_level"`
	TopSellers int    `mapstructure:"top_sellers"`
	TopStates  int    `mapstructure:"top_states"`
	TopCities  int    `mapstructure:"top_cities"`
	BestWorst  int    `mapstructure:"best_worst"`
	RFMLeaders int    `mapstructure:"rfm_leaders"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "seller-atlas.db")
	v.SetDefault("currency", "BRL")
	v.SetDefault("log_level", "info")
	v.SetDefault("top_sellers", aggregation.DefaultTopSellers)
	v.SetDefault("top_states", 5)
	v.SetDefault("top_cities", 10)
	v.SetDefault("best_worst", 5)
	v.SetDefault("rfm_leaders", 5)
}

// LoadSettings reads the settings file at path, if any, and applies
// SELLER_ATLAS_* environment overrides on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) validate() error {
	for name, n := range map[string]int{
		"top_sellers": s.TopSellers,
		"top_states":  s.TopStates,
		"top_cities":  s.TopCities,
		"best_worst":  s.BestWorst,
		"rfm_leaders": s.RFMLeaders,
	} {
		if n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, n)
		}
	}
	return nil
}

func (s *Settings) Limits() adapters.Limits {
	return adapters.Limits{
		States:     s.TopStates,
		Cities:     s.TopCities,
		BestWorst:  s.BestWorst,
		RFMLeaders: s.RFMLeaders,
	}
}

func (s *Settings) PipelineOptions() aggregation.Options {
	return aggregation.Options{TopSellers: s.TopSellers}
}
