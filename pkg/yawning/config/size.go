package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Size multipliers.
const (
	KiB int64 = 1024
	MiB       = KiB * 1024
	GiB       = MiB * 1024
)

// ErrInvalidSize is returned when a size string cannot be parsed.
var ErrInvalidSize = errors.New("invalid size")

var sizePattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([A-Za-z]*)$`)

// ParseSize parses a human-readable size like "10MB" or "512K" into bytes.
// Used for the log rotation max_size setting.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: negative size %q", ErrInvalidSize, s)
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	suffix := strings.ToUpper(matches[2])
	suffix = strings.TrimSuffix(suffix, "IB")
	suffix = strings.TrimSuffix(suffix, "B")

	var multiplier int64
	switch suffix {
	case "":
		multiplier = 1
	case "K":
		multiplier = KiB
	case "M":
		multiplier = MiB
	case "G":
		multiplier = GiB
	default:
		return 0, fmt.Errorf("%w: unknown unit in %q", ErrInvalidSize, s)
	}

	return int64(value * float64(multiplier)), nil
}
