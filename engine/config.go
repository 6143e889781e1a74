package engine

import (
	"github.com/hamba/pkg/log"
	"github.com/hamba/pkg/stats"
)

// DefaultUser is the acting user when none is given.
const DefaultUser = "currentuser"

// Config holds the configuration for an Engine.
type Config struct {
	// DefaultUser is the user that acts on tasks when an
	// action does not name one.
	DefaultUser string

	// Logger is the logger to log to.
	Logger log.Logger

	// Statter is the statter to report metrics to.
	Statter stats.Statter
}

// NewConfig creates/returns a default configuration.
func NewConfig() *Config {
	return &Config{
		DefaultUser: DefaultUser,
		Logger:      log.Null,
		Statter:     stats.Null,
	}
}
