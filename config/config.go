package config

import (
	"errors"
	"fmt"
	"time"

	"mindclinic/pkg/validator"

	"github.com/spf13/viper"
)

type Config struct {
	Data      DataConfig
	Session   SessionConfig
	SMTP      SMTPConfig
	Resources ResourcesConfig
}

type DataConfig struct {
	Dir      string `validate:"required"`
	AuditLog string `validate:"required"`
}

type SessionConfig struct {
	InactivityTimeout time.Duration `validate:"gt=0"`
	LoginAttempts     int           `validate:"gte=1"`
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type ResourcesConfig struct {
	URL string
}

// Configured reports whether outbound mail can be sent
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Sender != ""
}

// LoadConfig reads mindclinic.yaml from the working directory when present
// and overlays MINDCLINIC_* environment variables; every key has a default
// so a bare binary still runs.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("mindclinic")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("MINDCLINIC")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", "data")
	viper.SetDefault("audit_log", "audit.log")
	viper.SetDefault("inactivity_timeout_seconds", 180)
	viper.SetDefault("login_attempts", 3)
	viper.SetDefault("smtp.host", "")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.sender", "")
	viper.SetDefault("smtp.credential", "")
	viper.SetDefault("resources.url", "https://www.freemindfulness.org/download")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Data: DataConfig{
			Dir:      viper.GetString("data_dir"),
			AuditLog: viper.GetString("audit_log"),
		},
		Session: SessionConfig{
			InactivityTimeout: time.Duration(viper.GetInt("inactivity_timeout_seconds")) * time.Second,
			LoginAttempts:     viper.GetInt("login_attempts"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Sender:   viper.GetString("smtp.sender"),
			Password: viper.GetString("smtp.credential"),
		},
		Resources: ResourcesConfig{
			URL: viper.GetString("resources.url"),
		},
	}

	if err := validator.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
