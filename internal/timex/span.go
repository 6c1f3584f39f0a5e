package timex

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var spanToken = regexp.MustCompile(`(\d+)\s*(d|h|m|s)`)

var unitSeconds = map[string]int64{
	"d": 86400,
	"h": 3600,
	"m": 60,
	"s": 1,
}

// ParseSpan reads a human duration such as "1h 30m" or "2d" and returns its
// length in seconds. Every <integer><unit> pair found in text is summed;
// characters that do not form a pair are skipped. ok is false when nothing
// matched, the total is not positive or it does not fit in int64.
func ParseSpan(text string) (seconds int64, ok bool) {
	if text == "" {
		return 0, false
	}

	matches := spanToken.FindAllStringSubmatch(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return 0, false
	}

	var total int64
	for _, m := range matches {
		amount, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			// digits too long for int64
			return 0, false
		}
		unit := unitSeconds[m[2]]
		if amount > math.MaxInt64/unit {
			return 0, false
		}
		part := amount * unit
		if total > math.MaxInt64-part {
			return 0, false
		}
		total += part
	}

	if total <= 0 {
		return 0, false
	}
	return total, true
}

// FormatSpan renders seconds as "1h 2m 3s", omitting zero parts. Days are
// folded into hours. Zero and negative input render as "0s".
func FormatSpan(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, strconv.FormatInt(h, 10)+"h")
	}
	if m > 0 {
		parts = append(parts, strconv.FormatInt(m, 10)+"m")
	}
	if s > 0 {
		parts = append(parts, strconv.FormatInt(s, 10)+"s")
	}

	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
