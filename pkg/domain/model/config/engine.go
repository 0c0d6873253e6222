package config

import "time"

// Engine holds the tunable thresholds of the analytics engine and the session
// lifetime. Rolling windows are fixed at one day for operational metrics and
// seven days for evidence and knowledge volume.
type Engine struct {
	SLAMinutes        int
	AcceptableMinutes int
	TopLimit          int
	SessionTTL        time.Duration
}

// DefaultEngine returns the engine thresholds used when no config file is
// given.
func DefaultEngine() *Engine {
	return &Engine{
		SLAMinutes:        15,
		AcceptableMinutes: 15,
		TopLimit:          3,
		SessionTTL:        12 * time.Hour,
	}
}
