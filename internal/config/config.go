package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings of the application, read from a config file or
// environment variables.
type Config struct {
	DBSource       string `mapstructure:"DB_SOURCE"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	DutyTimezone   string `mapstructure:"DUTY_TIMEZONE"`
	DutyCutoffHour int    `mapstructure:"DUTY_CUTOFF_HOUR"`
}

// LoadConfig reads configuration from app.env in the given path, with
// environment variables taking precedence over the file.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("DUTY_TIMEZONE", "Europe/Istanbul")
	viper.SetDefault("DUTY_CUTOFF_HOUR", 9)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine as long as the environment supplies values.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Location resolves the configured duty timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DutyTimezone)
}
