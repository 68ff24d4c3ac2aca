package helpers

import (
	"context"
	"regexp"
	"strings"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z])")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

const dateLayout = "2006-01-02"

func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ToDate drops the time of day, keeping only the calendar date.
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
