package scrape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// coerceMinutes converts a JSON-LD time value to whole minutes. Accepts ISO
// 8601 durations ("PT1H30M"), bare numbers, and numeric strings (both treated
// as minutes, which is the common non-conforming encoding in the wild).
func coerceMinutes(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty duration")
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n, nil
		}
		d, err := parseISODuration(trimmed)
		if err != nil {
			return 0, err
		}
		return int(d.Minutes()), nil
	}
	return 0, fmt.Errorf("unexpected duration value %v", raw)
}

// parseISODuration parses the P[nD]T[nH][nM][nS] subset of ISO 8601 durations
// that recipe markup uses. Years and months are rejected as their length is
// calendar dependent.
func parseISODuration(s string) (time.Duration, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(upper, "P") {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var (
		total  time.Duration
		num    strings.Builder
		inTime bool
	)
	for _, c := range upper[1:] {
		if c >= '0' && c <= '9' || c == '.' {
			num.WriteRune(c)
			continue
		}
		if c == 'T' {
			inTime = true
			num.Reset()
			continue
		}
		value, err := strconv.ParseFloat(num.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		num.Reset()
		switch {
		case c == 'W' && !inTime:
			total += time.Duration(value * float64(7*24) * float64(time.Hour))
		case c == 'D' && !inTime:
			total += time.Duration(value * 24 * float64(time.Hour))
		case c == 'H' && inTime:
			total += time.Duration(value * float64(time.Hour))
		case c == 'M' && inTime:
			total += time.Duration(value * float64(time.Minute))
		case c == 'S' && inTime:
			total += time.Duration(value * float64(time.Second))
		default:
			return 0, fmt.Errorf("unsupported duration unit %q in %q", c, s)
		}
	}
	if num.Len() > 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return total, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
