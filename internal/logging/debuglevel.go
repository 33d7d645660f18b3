package logging

import (
	"os"
	"strconv"
	"strings"
)

// DebugLevelEnv is the environment variable read at process-initializer
// time to set the default diagnostic verbosity.
const DebugLevelEnv = "LIBIRECOVERY_DEBUG_LEVEL"

// debugLevel is process-wide; writers are callers of SetDebugLevel,
// readers are any goroutine. Torn reads are acceptable here (debug-only).
var debugLevel int

// defaultLogger is the process-wide console sink every internal
// package logs through. Its mask tracks debugLevel via MaskForLevel,
// so SetDebugLevel is the single knob that turns library-wide
// diagnostics (including per-transfer hex dumps) on or off.
var defaultLogger = New().ToConsole()

// Default returns the process-wide Logger, the one internal packages
// (usbtransport, upload, kis) write their diagnostics to.
func Default() *Logger {
	return defaultLogger
}

// SetDebugLevel sets the process-wide debug level and updates the
// default logger's mask accordingly.
func SetDebugLevel(level int) {
	debugLevel = level
	defaultLogger.SetMask(MaskForLevel(level))
}

// DebugLevel returns the current process-wide debug level.
func DebugLevel() int {
	return debugLevel
}

// MaskForLevel converts a debug-level integer into a LogLevel mask,
// with higher levels producing strictly more diagnostic output.
// Level 0 produces none: diagnostics reach standard error only when
// the debug level is positive.
func MaskForLevel(level int) LogLevel {
	switch {
	case level <= 0:
		return 0
	case level == 1:
		return LevelError | LevelInfo
	case level == 2:
		return LevelError | LevelInfo | LevelDebug
	default:
		return LevelAll
	}
}

func init() {
	if s, ok := os.LookupEnv(DebugLevelEnv); ok {
		if n, err := parseCInt(s); err == nil {
			debugLevel = n
		}
	}
	defaultLogger.SetMask(MaskForLevel(debugLevel))
}

// parseCInt parses a C-style integer literal: a bare "0", a decimal
// string, or a "0x"/"0X"-prefixed hexadecimal string.
func parseCInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "0":
		return 0, nil
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		n, err := strconv.ParseInt(s[2:], 16, 64)
		return int(n), err
	default:
		n, err := strconv.ParseInt(s, 10, 64)
		return int(n), err
	}
}
