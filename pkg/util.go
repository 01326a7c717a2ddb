package pkg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// ParseFloatList parses a comma separated list of numbers, e.g. "100,62.5, 40".
// Empty items are skipped, NaN and infinities are rejected.
func ParseFloatList(raw string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse [%s]: %w", part, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("parse [%s]: not a finite number", part)
		}
		values = append(values, v)
	}
	return values, nil
}
