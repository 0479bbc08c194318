package formatter

import (
	"fmt"
	"strconv"
)

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}

	le := len(s)
	if le <= 3 {
		if n < 0 {
			return "-" + s
		}
		return s
	}

	sepCount := (le - 1) / 3

	res := make([]byte, le+sepCount)

	j := len(res) - 1
	for i := le - 1; i >= 0; i-- {
		res[j] = s[i]
		j--
		if (le-i)%3 == 0 && i > 0 {
			res[j] = ','
			j--
		}
	}

	if n < 0 {
		return "-" + string(res)
	}
	return string(res)
}

// FormatPercent renders a ratio as a percentage with one decimal place, the
// format used across run summaries and reports. A zero denominator yields
// "0.0%".
func FormatPercent(part, total int) string {
	rate := 0.0
	if total > 0 {
		rate = float64(part) / float64(total) * 100
	}
	return fmt.Sprintf("%.1f%%", rate)
}
