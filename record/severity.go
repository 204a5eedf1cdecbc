package record

import (
	"fmt"
	"strings"
)

// Severity is the ordered level of a log record.
type Severity int8

const (
	Debug Severity = iota
	Info
	Warn
	Error
	// None is a floor sentinel that suppresses everything. It is never
	// attached to a record.
	None
)

var severityNames = [...]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	None:  "NONE",
}

// String returns the upper-case severity name.
func (s Severity) String() string {
	if s < Debug || s > None {
		return fmt.Sprintf("SEVERITY(%d)", int8(s))
	}
	return severityNames[s]
}

// Valid reports whether s is a declared severity, None included.
func (s Severity) Valid() bool {
	return s >= Debug && s <= None
}

// ParseSeverity converts "debug", "info", "warn"/"warning", "error" or
// "none" (any case) to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "none", "off":
		return None, nil
	default:
		return 0, fmt.Errorf("record: unknown severity %q", s)
	}
}

// MarshalText encodes the severity as its upper-case name.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("record: invalid severity %d", int8(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
