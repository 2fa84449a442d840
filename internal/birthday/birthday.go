package birthday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a birthday matches none of the accepted
// shapes or the matched shape fails to convert.
var ErrInvalidFormat = errors.New("birthday must be YYYY-MM-DD, YYYYMMDD or a millisecond timestamp")

const (
	dashedLayout  = "2006-01-02"
	compactLayout = "20060102"
)

// Bounds of a representable millisecond timestamp.
var (
	minMillis = time.Date(-262144, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxMillis = time.Date(262143, time.December, 31, 23, 59, 59, 999_000_000, time.UTC).UnixMilli()
)

// Parse turns s into a date at UTC midnight. Shapes are tried in order:
// anything containing '-' is YYYY-MM-DD, an 8 character string is YYYYMMDD,
// everything else is milliseconds since the Unix epoch.
func Parse(s string) (time.Time, error) {
	switch {
	case strings.Contains(s, "-"):
		return parseLayout(dashedLayout, s)
	case len(s) == 8:
		return parseLayout(compactLayout, s)
	default:
		return parseMillis(s)
	}
}

// Date truncates t to its calendar date in t's own location, expressed at
// UTC midnight so dates from different zones compare directly.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of whole days from `from` to `to`.
// Both must be values returned by Date or Parse.
func DaysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / 86400)
}

func parseLayout(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, s, err)
	}
	return t, nil
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, s, err)
	}
	if ms < minMillis || ms > maxMillis {
		return time.Time{}, fmt.Errorf("%w: %q: timestamp out of range", ErrInvalidFormat, s)
	}
	return Date(time.UnixMilli(ms).UTC()), nil
}
