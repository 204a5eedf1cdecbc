package logger

import "maps"

// Standard field keys used by the bundled integrations.
const (
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldClientIP  = "client_ip"
	FieldRequestID = "request_id"
)

// Fields builds a map[string]any from alternating key-value pairs. Pairs
// whose key is not a string are skipped.
//
//	log.Info("saved", logger.Fields("op", "save", "id", 42))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// mergeStatic folds the static context into a call-site payload. Call-site
// keys win over static ones; non-map payloads are kept under "data".
func mergeStatic(static map[string]any, data any) any {
	if len(static) == 0 {
		return data
	}
	switch d := data.(type) {
	case nil:
		return maps.Clone(static)
	case map[string]any:
		merged := maps.Clone(static)
		maps.Copy(merged, d)
		return merged
	default:
		merged := maps.Clone(static)
		merged["data"] = data
		return merged
	}
}
