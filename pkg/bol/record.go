package bol

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one loosely typed row as delivered by the REST backend
// (cargo lines, containers, container master data).
type Record map[string]any

// Str returns the field as trimmed text. Numbers are rendered without
// trailing zeros; anything else is empty.
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return ""
	}
}

// Num returns the field as a number. Absent or non-numeric values are 0.
func (r Record) Num(key string) float64 {
	n, _ := r.num(key)
	return n
}

// Has reports whether the field carries a usable value.
func (r Record) Has(key string) bool {
	return r.Str(key) != ""
}

func (r Record) num(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// SumField adds up a named numeric field across records, treating
// non-numeric and absent values as zero.
func SumField(records []Record, field string) float64 {
	var total float64
	for _, r := range records {
		total += r.Num(field)
	}
	return total
}
