package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError describes an input ParseStrict could not interpret.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse timecode %q: %s", e.Input, e.Reason)
}

// Format renders seconds as MM:SS.mmm. Minutes are not wrapped at 59, so
// values past an hour stay representable. Negative input is clamped to zero.
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	minutes := int(seconds) / 60
	secs := int(seconds) % 60
	// Round rather than truncate so values produced by parseDisplay survive
	// the float trip back to the same string.
	millis := int(math.Round(math.Mod(seconds, 1) * 1000))
	if millis >= 1000 {
		millis -= 1000
		secs++
		if secs == 60 {
			secs = 0
			minutes++
		}
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// Parse converts any supported textual form to seconds. It never fails:
// unparseable input yields 0. Callers that need the failure should use
// ParseStrict.
func Parse(value string) float64 {
	seconds, err := ParseStrict(value)
	if err != nil {
		return 0
	}
	return seconds
}

// ParseStrict converts any supported textual form to seconds, classifying the
// input by structure: comma plus colon means SRT, period plus colon means the
// display format, anything else is read as a bare number.
func ParseStrict(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &ParseError{Input: value, Reason: "empty"}
	}
	switch {
	case strings.Contains(trimmed, ",") && strings.Contains(trimmed, ":"):
		return parseSRT(trimmed)
	case strings.Contains(trimmed, ".") && strings.Contains(trimmed, ":"):
		return parseDisplay(trimmed)
	default:
		seconds, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, &ParseError{Input: value, Reason: "not a number"}
		}
		return seconds, nil
	}
}

// parseDisplay reads MM:SS.mmm. The millisecond part is optional digits after
// the period; minutes may exceed 59.
func parseDisplay(value string) (float64, error) {
	main, fraction, _ := strings.Cut(value, ".")
	minutePart, secondPart, ok := strings.Cut(main, ":")
	if !ok {
		return 0, &ParseError{Input: value, Reason: "missing minute separator"}
	}
	minutes, errM := strconv.Atoi(minutePart)
	seconds, errS := strconv.Atoi(secondPart)
	if errM != nil || errS != nil {
		return 0, &ParseError{Input: value, Reason: "non-numeric minutes or seconds"}
	}
	millis := 0
	if fraction != "" {
		var err error
		millis, err = strconv.Atoi(fraction)
		if err != nil {
			return 0, &ParseError{Input: value, Reason: "non-numeric milliseconds"}
		}
	}
	return float64(minutes*60+seconds) + float64(millis)/1000, nil
}

// parseSRT reads HH:MM:SS,mmm. A period in place of the comma is tolerated
// since SRT files in the wild mix the two.
func parseSRT(value string) (float64, error) {
	normalized := strings.ReplaceAll(value, ".", ",")
	clock, millisPart, ok := strings.Cut(normalized, ",")
	if !ok {
		return 0, &ParseError{Input: value, Reason: "missing millisecond separator"}
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, &ParseError{Input: value, Reason: "expected HH:MM:SS"}
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(strings.TrimSpace(millisPart))
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, &ParseError{Input: value, Reason: "non-numeric component"}
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
