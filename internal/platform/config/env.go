package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by the qwixx commands.
const EnvPrefix = "QWIXX_"

// ParseEnvWithPrefix loads configuration from environment variables whose
// names carry prefix ahead of the struct tag name.
func ParseEnvWithPrefix(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
