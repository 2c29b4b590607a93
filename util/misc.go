package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ConvertTimestamp turns seconds since the Unix epoch into a time.Time in the
// local time zone, or in UTC when utc is set.
func ConvertTimestamp(ts float64, utc bool) time.Time {
	sec, frac := math.Modf(ts)
	t := time.Unix(int64(sec), int64(math.Round(frac*1e9)))
	if utc {
		return t.UTC()
	}
	return t.Local()
}

// ParseTimestamp is ConvertTimestamp for timestamps held in strings.
func ParseTimestamp(s string, utc bool) (time.Time, error) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidArgument, err)
	}
	return ConvertTimestamp(ts, utc), nil
}

// ConcatenateIntegers joins the decimal forms of ints into one integer,
// e.g. 10 and 20 become 1020.
func ConcatenateIntegers(ints ...int) (int, error) {
	if len(ints) == 0 {
		return 0, fmt.Errorf("nothing to concatenate: %w", ErrInvalidArgument)
	}
	var sb strings.Builder
	for _, i := range ints {
		sb.WriteString(strconv.Itoa(i))
	}
	n, err := strconv.Atoi(sb.String())
	if err != nil {
		return 0, errors.Join(ErrInvalidArgument, err)
	}
	return n, nil
}
