package http

import (
	"strings"
	"time"
)

// Calendar fields travel as ISO dates, timestamps as RFC 3339.
const dateLayout = "2006-01-02"

func parseDateField(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, trimmed); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, trimmed)
}

func parseOptionalDateField(value string) (*time.Time, error) {
	t, err := parseDateField(value)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, nil
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}
