package boxscore

import (
	"math"
	"strconv"
	"strings"
)

// floatFields are the fields that parse as floating point; everything else
// parses as an integer first. Sacks are fractional (half-sacks).
var floatFields = map[string]bool{
	"avg":   true,
	"pct":   true,
	"rtg":   true,
	"sacks": true,
}

// Value is a coerced numeric cell.
type Value struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// IntValue wraps an integer.
func IntValue(v int64) Value { return Value{Int: v} }

// FloatValue wraps a float.
func FloatValue(v float64) Value { return Value{Float: v, IsFloat: true} }

// CoerceCell converts raw cell text into a typed value for the named
// canonical field. The second return is false when the field is absent:
// empty cells, the "-" sentinel and unparseable text all degrade to absent,
// never to zero and never to an error. Sources mark touchdown-ending stats
// with a trailing "t" which is stripped before parsing; thousands separators
// are stripped too.
func CoerceCell(text, field string) (Value, bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return Value{}, false
	}

	text = strings.TrimSpace(strings.TrimRight(text, "t"))
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return Value{}, false
	}

	if floatFields[field] {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, false
		}
		return FloatValue(f), true
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntValue(n), true
	}
	// Some sources print integer fields with a decimal point.
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return FloatValue(f), true
	}
	return Value{}, false
}

// CompletionPct derives passing completion percentage from already-coerced
// attempts and completions: com/att*100 rounded to two decimals, 0.0 when
// att is zero.
func CompletionPct(att, com int64) float64 {
	if att == 0 {
		return 0.0
	}
	return Round2(float64(com) / float64(att) * 100)
}

// Round2 rounds to two decimal places. Aggregation rounds; ingestion of raw
// cells never does.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseIntText parses free-standing integer text (scores, attendance),
// tolerating thousands separators. Returns false when the text is not a
// number.
func ParseIntText(text string) (int64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
