package status

import (
	"regexp"
	"strconv"
)

var windowDigits = regexp.MustCompile(`\d+`)

// ParseCancellationWindow extracts the day offsets from a free-text
// cancellation window such as "120 - 90 Days" or "60 Days". All embedded
// integers are considered; minDays and maxDays are their extremes, and they
// are equal when only one number is present. ok is false when the text
// contains no number, which consumers treat as missing data.
func ParseCancellationWindow(s string) (minDays, maxDays int, ok bool) {
	matches := windowDigits.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, 0, false
	}

	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}

		if !ok || n < minDays {
			minDays = n
		}
		if !ok || n > maxDays {
			maxDays = n
		}
		ok = true
	}

	return minDays, maxDays, ok
}
