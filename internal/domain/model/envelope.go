package model

// Envelope is the {success, data} wrapper every backend endpoint responds with.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   int    `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Record is an open JSON object for payloads whose shape no page depends on yet
// (resources, time-series points, cost rows).
type Record map[string]any

// String returns the string value at key, or "".
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}
