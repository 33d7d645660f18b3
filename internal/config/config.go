// Package config holds the library's process-wide timing parameters.
//
// A single exported Config value carries baked-in defaults,
// overridable at process-init time by environment variables. There is
// no persistent on-disk configuration file: the library has no daemon
// to restart, so there is nothing for a file watcher to reload.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the library's timing parameters, exposed so a
// deployment can tune them for slow or flaky hardware without a
// rebuild.
type Config struct {
	// OpenTimeout is the timeout internal/upload passes for its control
	// and bulk transfers; Receive's bulk reads use their own 500ms.
	// Default 10s.
	OpenTimeout time.Duration

	// StatusPollInterval is the pause between DFU get_status retries
	// in internal/upload. Default 1s.
	StatusPollInterval time.Duration

	// StatusPollRetries caps the number of DFU get_status retries
	// before a send_buffer call fails. Default 20.
	StatusPollRetries int

	// HotplugPollInterval is the interval between USB bus scans in
	// internal/hotplug. Default 500ms.
	HotplugPollInterval time.Duration
}

// Conf is the process-wide configuration instance. Packages read it
// directly rather than threading a *Config through every call.
var Conf = Config{
	OpenTimeout:         10 * time.Second,
	StatusPollInterval:  1 * time.Second,
	StatusPollRetries:   20,
	HotplugPollInterval: 500 * time.Millisecond,
}

// Environment variables read once at package-init time, each
// overriding the matching Config field in milliseconds (or, for
// StatusPollRetries, a plain retry count).
const (
	envOpenTimeoutMs         = "LIBIRECOVERY_OPEN_TIMEOUT_MS"
	envStatusPollIntervalMs  = "LIBIRECOVERY_STATUS_POLL_INTERVAL_MS"
	envStatusPollRetries     = "LIBIRECOVERY_STATUS_POLL_RETRIES"
	envHotplugPollIntervalMs = "LIBIRECOVERY_HOTPLUG_POLL_INTERVAL_MS"
)

func init() {
	if ms, ok := envMillis(envOpenTimeoutMs); ok {
		Conf.OpenTimeout = ms
	}
	if ms, ok := envMillis(envStatusPollIntervalMs); ok {
		Conf.StatusPollInterval = ms
	}
	if n, ok := envInt(envStatusPollRetries); ok {
		Conf.StatusPollRetries = n
	}
	if ms, ok := envMillis(envHotplugPollIntervalMs); ok {
		Conf.HotplugPollInterval = ms
	}
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envMillis(name string) (time.Duration, bool) {
	n, ok := envInt(name)
	if !ok {
		return 0, false
	}
	return time.Duration(n) * time.Millisecond, true
}
