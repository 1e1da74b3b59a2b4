package common

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Calendar days are represented as "yyyy-mm-dd" strings throughout.  These
// sort lexicographically in date order, so day sets and ranges can be compared
// and ordered without converting back to time.Time.

const DayLayout = "2006-01-02"

var dayRe = regexp.MustCompile(`^(\d\d\d\d)-(\d\d)-(\d\d)$`)

// Parse a "yyyy-mm-dd" day string and return midnight UTC of that day.
//
// NOTE: we're opting in to the Go semantics here: the nonexistent yyyy-09-31
// is silently reinterpreted as yyyy-10-01.

func ParseDayUtc(s string) (time.Time, error) {
	probe := dayRe.FindSubmatch([]byte(s))
	if probe == nil {
		return time.Time{}, errors.New("Bad day specification")
	}
	yyyy, _ := strconv.ParseUint(string(probe[1]), 10, 32)
	mm, _ := strconv.ParseUint(string(probe[2]), 10, 32)
	dd, _ := strconv.ParseUint(string(probe[3]), 10, 32)
	return time.Date(int(yyyy), time.Month(mm), int(dd), 0, 0, 0, 0, time.UTC), nil
}

// t should be UTC, the result is always UTC
func ThisDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// t should be UTC, the result is always UTC
func RoundupDay(t time.Time) time.Time {
	// Add less than one full day so as to make RoundupDay idempotent.
	return ThisDay(t.Add(24*time.Hour - 1*time.Second))
}

func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

func DayOfUnix(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(DayLayout)
}

func Today() string {
	return DayOf(time.Now())
}

// Enumerate every day from fromDay to toDay, both inclusive, in ascending
// order.  An inverted range yields nil.

func DaysBetween(fromDay, toDay string) ([]string, error) {
	from, err := ParseDayUtc(fromDay)
	if err != nil {
		return nil, err
	}
	to, err := ParseDayUtc(toDay)
	if err != nil {
		return nil, err
	}
	var days []string
	for ; !from.After(to); from = from.AddDate(0, 0, 1) {
		days = append(days, DayOf(from))
	}
	return days, nil
}
