package utils

import (
	"fmt"
	"strconv"
)

// ParseQueryInt converts an optional query parameter to int. An empty value
// falls back to the default; a non-numeric value is a caller error. Range
// checks are left to struct validation so out-of-range input fails loudly
// instead of being clamped.
func ParseQueryInt(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value %q", value)
	}

	return result, nil
}
