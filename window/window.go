// Package window decides whether a rule is eligible to run at a given moment.
// Day ranges use 1..7 with Sunday as 1. Time ranges compare zero padded
// "HH:mm" strings.
package window

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidRange = errors.New("invalid window range")

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type dayRange struct {
	from, to int
}

// Days is a set of day ranges, any of which admits a day. An empty set admits
// every day.
type Days []dayRange

func ParseDays(specs []string) (Days, error) {
	days := make(Days, 0, len(specs))
	for _, spec := range specs {
		lower, upper, bounded := split(spec)
		from, err := parseDay(lower)
		if err != nil {
			return nil, fmt.Errorf("%w: day %q: %s", ErrInvalidRange, spec, err)
		}
		r := dayRange{from: from}
		if bounded {
			if r.to, err = parseDay(upper); err != nil {
				return nil, fmt.Errorf("%w: day %q: %s", ErrInvalidRange, spec, err)
			}
			if r.to < r.from {
				return nil, fmt.Errorf("%w: day %q: lower bound is after upper bound", ErrInvalidRange, spec)
			}
		}
		days = append(days, r)
	}
	return days, nil
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if day < 1 || day > 7 {
		return 0, fmt.Errorf("%d is outside 1-7", day)
	}
	return day, nil
}

func (d Days) Contains(now time.Time) bool {
	if len(d) == 0 {
		return true
	}
	today := Day(now)
	for _, r := range d {
		if today < r.from {
			continue
		}
		if r.to != 0 && today > r.to {
			continue
		}
		return true
	}
	return false
}

// Day numbers the weekday of t from 1 (Sunday) to 7 (Saturday).
func Day(t time.Time) int {
	return int(t.Weekday()) + 1
}

type timeRange struct {
	from, to string
}

// Times is a set of "HH:mm" ranges, any of which admits a time. An empty set
// admits every time.
type Times []timeRange

func ParseTimes(specs []string) (Times, error) {
	times := make(Times, 0, len(specs))
	for _, spec := range specs {
		lower, upper, bounded := split(spec)
		if !clockPattern.MatchString(lower) {
			return nil, fmt.Errorf("%w: time %q: %q is not HH:mm", ErrInvalidRange, spec, lower)
		}
		r := timeRange{from: lower}
		if bounded {
			if !clockPattern.MatchString(upper) {
				return nil, fmt.Errorf("%w: time %q: %q is not HH:mm", ErrInvalidRange, spec, upper)
			}
			if upper < lower {
				return nil, fmt.Errorf("%w: time %q: lower bound is after upper bound", ErrInvalidRange, spec)
			}
			r.to = upper
		}
		times = append(times, r)
	}
	return times, nil
}

func (t Times) Contains(now time.Time) bool {
	if len(t) == 0 {
		return true
	}
	current := now.Format("15:04")
	for _, r := range t {
		if current < r.from {
			continue
		}
		if r.to != "" && current > r.to {
			continue
		}
		return true
	}
	return false
}

// IsValidDay reports whether now falls in any of the day ranges. Ranges that
// do not parse never match.
func IsValidDay(specs []string, now time.Time) bool {
	for _, spec := range specs {
		days, err := ParseDays([]string{spec})
		if err == nil && days.Contains(now) {
			return true
		}
	}
	return len(specs) == 0
}

// IsValidTime reports whether now falls in any of the time ranges. Ranges that
// do not parse never match.
func IsValidTime(specs []string, now time.Time) bool {
	for _, spec := range specs {
		times, err := ParseTimes([]string{spec})
		if err == nil && times.Contains(now) {
			return true
		}
	}
	return len(specs) == 0
}

func split(spec string) (lower, upper string, bounded bool) {
	lower, upper, bounded = strings.Cut(strings.TrimSpace(spec), "-")
	lower = strings.TrimSpace(lower)
	upper = strings.TrimSpace(upper)
	if upper == "" {
		bounded = false
	}
	return lower, upper, bounded
}
