package debug

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (screen summary, mesh size)
	LevelVerbose = 2 // Verbose (fit details, extreme points, residuals)
	LevelTrace   = 3 // Trace (per-sample projections)
)

var (
	level  int
	logger *log.Logger
)

// Init initializes the debug system with a level (0-3).
// 0 = no output
// 1 = important info (screen summary, mesh size)
// 2 = verbose (fit details, extreme points, planarity residuals)
// 3 = trace (per-sample projections)
func Init(debugLevel int) {
	level = debugLevel
	if level > LevelOff {
		logger = log.New(os.Stderr, "[anglestoconfig] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// SetOutput redirects diagnostic output, e.g. for capturing in tests.
func SetOutput(w io.Writer) {
	if logger != nil {
		logger.SetOutput(w)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Verbose prints a level 2 message (fit details).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Trace prints a level 3 message (per-sample detail).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// Section prints a section separator (level 2).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Step prints a numbered pipeline step (level 2).
func Step(num int, description string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] Step %d: %s", num, description)
	}
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// Screen prints the fitted screen summary (level 1).
func Screen(hFOV, vFOV, overlap, xCOP, yCOP float64) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Screen: hFOV=%.4f° vFOV=%.4f° overlap=%.1f%% COP=(%.4f, %.4f)",
			hFOV, vFOV, overlap, xCOP, yCOP)
	}
}

// MeshStats prints the mesh summary (level 1).
func MeshStats(entries int) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Mesh: %d entries", entries)
	}
}

// Sample prints a per-sample trace (level 3).
func Sample(index int, fromX, fromY, toX, toY float64) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] sample %d: from=(%.4f, %.4f) to=(%.4f, %.4f)", index, fromX, fromY, toX, toY)
	}
}

// Mismatch prints an angle-verification mismatch (level 1).
func Mismatch(index int, diffDegrees float64) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] verify: sample %d deviates by %.4f°", index, diffDegrees)
	}
}

// Error prints a debug error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[ERROR] %v", err)
	}
}

// Fmt is a helper function that returns a formatted string
// only if debug is enabled (to avoid unnecessary allocations).
func Fmt(format string, args ...interface{}) string {
	if level > 0 {
		return fmt.Sprintf(format, args...)
	}
	return ""
}
