package windowtest

import (
	"strings"
	"sync"
)

// Logger is a logger.Logger that keeps every message, prefixed with its level.
type Logger struct {
	mu    sync.Mutex
	lines []string
}

func (l *Logger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+msg)
}

func (l *Logger) Print(message string)   { l.add("PRINT", message) }
func (l *Logger) Trace(message string)   { l.add("TRACE", message) }
func (l *Logger) Debug(message string)   { l.add("DEBUG", message) }
func (l *Logger) Info(message string)    { l.add("INFO", message) }
func (l *Logger) Warning(message string) { l.add("WARNING", message) }
func (l *Logger) Error(message string)   { l.add("ERROR", message) }
func (l *Logger) Fatal(message string)   { l.add("FATAL", message) }

// Contains reports whether any line holds substr.
func (l *Logger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
