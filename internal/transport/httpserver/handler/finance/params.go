package finance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date or an RFC 3339 timestamp. dateOnly
// reports which form was given.
func parseDate(value string) (parsed time.Time, dateOnly bool, err error) {
	value = strings.TrimSpace(value)
	if parsed, err = time.Parse(dateLayout, value); err == nil {
		return parsed, true, nil
	}
	if parsed, err = time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), false, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", value)
}

func parseStartParam(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, _, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseEndParam treats a bare date as the whole day.
func parseEndParam(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, dateOnly, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	if dateOnly {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}
