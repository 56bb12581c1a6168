package config

import (
	"fmt"
	"strings"

	"github.com/schoolpilot/waitlist-api/internal/log"
)

// AuthConfig carries the admin credentials and the session signing secret.
// All three are required: the original deployment fell back to a hardcoded
// signing secret when unset, which we refuse to replicate.
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	SessionSecret string
}

func NewAuthConfig(logger *log.Logger) (*AuthConfig, error) {
	cfg := &AuthConfig{
		AdminUsername: sanitizeEnv(GetValueFromEnvironmentVariable("ADMIN_USERNAME", "")),
		AdminPassword: sanitizeEnv(GetValueFromEnvironmentVariable("ADMIN_PASSWORD", "")),
		SessionSecret: sanitizeEnv(GetValueFromEnvironmentVariable("ADMIN_SESSION_SECRET", "")),
	}

	missing := []string{}

	if cfg.AdminUsername == "" {
		missing = append(missing, "ADMIN_USERNAME")
	}

	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}

	if cfg.SessionSecret == "" {
		missing = append(missing, "ADMIN_SESSION_SECRET")
	}

	if len(missing) > 0 {
		logger.Error("Missing required admin auth environment variables", "missing_vars", strings.Join(missing, ", "))
		return nil, fmt.Errorf("missing required admin auth env vars: %s", strings.Join(missing, ", "))
	}

	logger.Info("Admin auth configuration loaded", "username", cfg.AdminUsername)
	return cfg, nil
}
