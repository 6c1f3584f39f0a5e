package timex

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestParseSpan(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int64
		wantOK bool
	}{
		{"empty", "", 0, false},
		{"zero hours", "0h", 0, false},
		{"hours and minutes", "1h30m", 5400, true},
		{"days", "2d", 172800, true},
		{"spaces between pairs", "1h 30m 15s", 5415, true},
		{"space inside pair", "45 m", 2700, true},
		{"upper case", "1H 2M", 3720, true},
		{"garbage around tokens", "in about 10m please", 600, true},
		{"repeated units add up", "10m 10m", 1200, true},
		{"garbage only", "tomorrow", 0, false},
		{"number without unit", "30", 0, false},
		{"zero sum", "0d 0s", 0, false},
		{"max seconds", "9223372036854775807s", math.MaxInt64, true},
		{"token overflows int64", "300000000000000d", 0, false},
		{"sum overflows int64", "9223372036854775807s 1s", 0, false},
		{"digits too long", "99999999999999999999s", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSpan(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSpan(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{59, "59s"},
		{60, "1m"},
		{90, "1m 30s"},
		{3600, "1h"},
		{3661, "1h 1m 1s"},
		{86400, "24h"},
		{172800 + 120, "48h 2m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSpan(tt.in))
		})
	}
}

func TestSpanRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("ParseSpan(FormatSpan(s)) == s", prop.ForAll(
		func(s int64) bool {
			got, ok := ParseSpan(FormatSpan(s))
			return ok && got == s
		},
		gen.Int64Range(1, 10*365*86400),
	))

	properties.TestingRun(t)
}
