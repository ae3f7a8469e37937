package util

import (
	"fmt"
	"strconv"
)

const MaxPageSize = 100

// ParseIntDefault returns def for an absent query value. A present value that
// is not an integer is reported so the caller can reject it.
func ParseIntDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return v, nil
}

// CheckPage validates limit against [1, max] and offset against >= 0.
func CheckPage(limit, offset, max int) error {
	if limit < 1 || limit > max {
		return fmt.Errorf("limit must be between 1 and %d", max)
	}
	if offset < 0 {
		return fmt.Errorf("offset must be >= 0")
	}
	return nil
}
