package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbukum/catlog/record"
)

// Options control console rendering.
type Options struct {
	Timestamps bool
	Colors     bool
}

// Kind selects one of the renderers.
type Kind string

const (
	KindConsole Kind = "console"
	KindGrep    Kind = "grep"
	KindJSON    Kind = "json"
)

// ParseKind converts "console", "grep"/"text" or "json" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console", "pretty":
		return KindConsole, nil
	case "grep", "text":
		return KindGrep, nil
	case "json", "machine":
		return KindJSON, nil
	default:
		return "", fmt.Errorf("format: unknown format %q (want console, grep or json)", s)
	}
}

// Render dispatches to the renderer selected by k. Unknown kinds render as
// grep lines.
func Render(k Kind, rec record.Record, opts Options) string {
	switch k {
	case KindConsole:
		return Console(rec, opts)
	case KindJSON:
		return Machine(rec)
	default:
		return Grep(rec)
	}
}

// Machine serializes the whole record as JSON. A payload that cannot be
// encoded is replaced by its placeholder string; every other field survives.
func Machine(rec record.Record) string {
	b, err := safeMarshal(func() ([]byte, error) { return json.Marshal(rec) })
	if err == nil {
		return string(b)
	}
	fallback := rec.WithData(placeholder(rec.Data(), err))
	b, err = safeMarshal(func() ([]byte, error) { return json.Marshal(fallback) })
	if err != nil {
		return fmt.Sprintf(`{"message":%q,"error":"unserializable record"}`, rec.Message())
	}
	return string(b)
}

// encodeData renders a payload as JSON, indented or compact, without HTML
// escaping. Failures come back as the placeholder string.
func encodeData(v any, indent bool) string {
	b, err := safeMarshal(func() ([]byte, error) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if indent {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	})
	if err != nil {
		return placeholder(v, err)
	}
	return string(b)
}

// safeMarshal runs fn and turns a panic inside a MarshalJSON method into an
// error.
func safeMarshal(fn func() ([]byte, error)) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = fmt.Errorf("marshaler panicked: %v", r)
		}
	}()
	return fn()
}

// placeholder never formats v itself: fmt on a self-referencing map does
// not terminate.
func placeholder(v any, err error) string {
	return fmt.Sprintf("[unserializable %T: %s]", v, err)
}
