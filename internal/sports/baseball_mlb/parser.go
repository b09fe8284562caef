package baseball_mlb

import (
	"strconv"
	"strings"
)

// parseFloat parses a float from interface{}
// MLB rate stats arrive as strings (".310"); placeholders like ".---" parse to 0
func parseFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f
	case int:
		return float64(val)
	default:
		return 0.0
	}
}

// parseRate parses a rate stat and reports whether it was numeric
func parseRate(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0.0, false
		}
		return f, true
	default:
		return 0.0, false
	}
}

// parseInt parses an int from interface{}
func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(val))
		return i
	case int:
		return val
	default:
		return 0
	}
}

// parseBirthYear returns the year of a "YYYY-MM-DD" birth date
func parseBirthYear(birthDate string) (int, bool) {
	if birthDate == "" {
		return 0, false
	}
	year, err := strconv.Atoi(strings.SplitN(birthDate, "-", 2)[0])
	if err != nil {
		return 0, false
	}
	return year, true
}

// extractString safely extracts a string from a map
func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// extractInt safely extracts an int from a map
func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

// extractFloat safely extracts a float from a map
func extractFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		return parseFloat(v)
	}
	return 0.0
}

// extractRate extracts a rate stat; a missing key counts as a numeric zero
func extractRate(m map[string]interface{}, key string) (float64, bool) {
	if v, ok := m[key]; ok {
		return parseRate(v)
	}
	return 0.0, true
}

// extractMap safely extracts a map from a map
func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// extractArray safely extracts an array from a map
func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

// firstMap returns the first element of arr as a map
func firstMap(arr []interface{}) (map[string]interface{}, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	m, ok := arr[0].(map[string]interface{})
	return m, ok
}
