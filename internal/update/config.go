package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cadence-sh/cadence/internal/schedule"
)

type RuntimeConfig struct {
	DBPath            string
	WindowMonths      int
	HoldPendingWeekly bool
	RateCap           int
	SchedulerBuffer   int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:            defaultDBPath(),
		WindowMonths:      schedule.DefaultWindowMonths,
		HoldPendingWeekly: true,
		RateCap:           100,
		SchedulerBuffer:   64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("CADENCE_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvInt("CADENCE_WINDOW_MONTHS"); ok && v > 0 {
		cfg.WindowMonths = v
	}
	if v, ok := getEnvBool("CADENCE_WEEKLY_GRACE"); ok {
		cfg.HoldPendingWeekly = v
	}
	if v, ok := getEnvInt("CADENCE_RATE_CAP"); ok && (v == 100 || v == 200) {
		cfg.RateCap = v
	}
	if v, ok := getEnvInt("CADENCE_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cadence.db"
	}
	return filepath.Join(home, ".cadence", "cadence.db")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
