// Package fields converts loosely typed update payloads from chat commands and JSON bodies.
package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeKey folds a field name so dueDate, due_date and DueDate compare equal.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	return strings.ReplaceAll(key, "-", "")
}

// String converts a scalar value to a string.
func String(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// Strings converts a list or a comma separated string into a list of trimmed, non-empty values.
func Strings(value any) ([]string, bool) {
	var raw []string
	switch v := value.(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			raw = append(raw, s)
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil, false
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimPrefix(strings.TrimSpace(s), "@")
		if s != "" {
			out = append(out, s)
		}
	}
	return out, true
}

// Decimal converts a numeric value or numeric string to a decimal.
func Decimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// Int converts a numeric value or numeric string to an int.
func Int(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), v == float64(int(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}
