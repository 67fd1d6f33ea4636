package encoder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// HashDigits is the length of an abbreviated VCS hash.
	HashDigits = 8
	// TimestampLayout is the ISO-8601 "Zulu" layout of the build timestamp.
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// FormatDotted produces "{major}.{minor}.{patch}.{build}".
func FormatDotted(major, minor, patch, build int) string {
	return fmt.Sprintf("%d.%d.%d.%d", major, minor, patch, build)
}

// FormatInfo appends the suffix verbatim to the dotted version.
func FormatInfo(dotted, suffix string) string {
	return dotted + suffix
}

// FormatHash renders a 32-bit VCS hash as an uppercase hex literal.
// Zero means "no hash" and yields the all-zero sentinel, never an error.
func FormatHash(hash uint32, literalSuffix string) string {
	return fmt.Sprintf("0x%08X%s", hash, literalSuffix)
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ShortenHash keeps the top 8 hex digits of a full commit identifier,
// dropping any 0x prefix. Shorter input is returned unchanged so ParseHash
// can reject it.
func ShortenHash(full string) string {
	full = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(full), "0x"), "0X")
	if len(full) <= HashDigits {
		return full
	}

	return full[:HashDigits]
}

// ParseHash converts an 8 hex-digit hash (optionally prefixed with 0x) into
// its 32-bit value. An empty string is the absent hash and parses as zero.
func ParseHash(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(digits) != HashDigits {
		return 0, fmt.Errorf("%w: %q must have exactly %d hex digits", ErrInvalidHash, s, HashDigits)
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidHash, s, err)
	}

	return uint32(value), nil
}

// ParseDotted parses "1", "1.2", "1.2.3" or "1.2.3.4" (an optional leading
// "v" is allowed) into four components. Missing components are zero.
// Components are range checked like EncodeBCD.
func ParseDotted(s string) ([4]int, error) {
	var components [4]int

	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if trimmed == "" {
		return components, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) > len(components) {
		return components, fmt.Errorf("%w: %q has more than %d components", ErrInvalidVersion, s, len(components))
	}

	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return components, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, s, err)
		}

		if err = checkComponent(i, value); err != nil {
			return components, err
		}

		components[i] = value
	}

	return components, nil
}
