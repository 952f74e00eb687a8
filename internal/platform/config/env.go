// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Setting returns value trimmed, or "" when it matches one of the
// placeholders shipped in example env files.
func Setting(value string, placeholders ...string) string {
	trimmed := strings.TrimSpace(value)
	for _, placeholder := range placeholders {
		if strings.EqualFold(trimmed, placeholder) {
			return ""
		}
	}
	return trimmed
}
