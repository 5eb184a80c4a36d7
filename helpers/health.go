package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type BasicAuth struct {
	Username     string `yaml:"username" json:"username"`
	UsernameHash string `yaml:"username_hash" json:"username_hash"`
	Password     string `yaml:"password" json:"password"`
	PasswordHash string `yaml:"password_hash" json:"password_hash"`
}

func (b BasicAuth) Enabled() bool {
	return b.Username != "" || b.UsernameHash != "" || b.Password != "" || b.PasswordHash != ""
}

type HealthConfig struct {
	ServerConfig          ServerConfig `yaml:"server_config" json:"server_config"`
	BasicAuth             BasicAuth    `yaml:"basic_auth" json:"basic_auth"`
	ReadinessCheckEnabled bool         `yaml:"readiness_enabled" json:"readiness_enabled"`
}

var ErrConfiguration = fmt.Errorf("configuration error")

func (c *HealthConfig) Validate() error {
	if c.ServerConfig.Port < 0 || c.ServerConfig.Port > 65535 {
		return fmt.Errorf("%w: health server port %d is out of range", ErrConfiguration, c.ServerConfig.Port)
	}

	if c.BasicAuth.Username != "" && c.BasicAuth.UsernameHash != "" {
		return fmt.Errorf("%w: both healthcheck username and healthcheck username_hash are set, please provide only one of them", ErrConfiguration)
	}

	if c.BasicAuth.Password != "" && c.BasicAuth.PasswordHash != "" {
		return fmt.Errorf("%w: both healthcheck password and healthcheck password_hash are provided, please provide only one of them", ErrConfiguration)
	}

	if c.BasicAuth.UsernameHash != "" {
		if _, err := bcrypt.Cost([]byte(c.BasicAuth.UsernameHash)); err != nil {
			return fmt.Errorf("%w: healthcheck username_hash is not a valid bcrypt hash", ErrConfiguration)
		}
	}

	if c.BasicAuth.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.BasicAuth.PasswordHash)); err != nil {
			return fmt.Errorf("%w: healthcheck password_hash is not a valid bcrypt hash", ErrConfiguration)
		}
	}

	if c.BasicAuth.Username == "" && c.BasicAuth.Password != "" {
		return fmt.Errorf("%w: healthcheck username is empty", ErrConfiguration)
	}

	if c.BasicAuth.Username != "" && c.BasicAuth.Password == "" {
		return fmt.Errorf("%w: healthcheck password is empty", ErrConfiguration)
	}

	return nil
}
