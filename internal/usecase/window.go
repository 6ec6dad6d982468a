package usecase

import (
	"time"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/ports"
)

const (
	defaultMorningHours = 14
	defaultEveningHours = 10
)

// HoursBack sizes the look-back window for a run starting at now, read in
// now's location. A positive override always wins.
func HoursBack(now time.Time, cfg config.WindowConfig) int {
	if cfg.OverrideHours > 0 {
		return max(1, cfg.OverrideHours)
	}

	morning := cfg.MorningHours
	if morning <= 0 {
		morning = defaultMorningHours
	}
	evening := cfg.EveningHours
	if evening <= 0 {
		evening = defaultEveningHours
	}

	switch hour := now.Hour(); {
	case hour == 8:
		return morning
	case hour == 18:
		return evening
	case hour < 12:
		return morning
	default:
		return evening
	}
}

// WindowEnding returns the hours-long window that closes at now.
func WindowEnding(now time.Time, hours int) ports.Window {
	return ports.Window{
		Start: now.Add(-time.Duration(hours) * time.Hour),
		End:   now,
	}
}
