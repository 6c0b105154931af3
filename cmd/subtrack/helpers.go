package main

import (
	"fmt"
	"strconv"
	"strings"

	"subtrack/internal/subtitle"
	"subtrack/internal/timecode"
)

// parseTimeFlag accepts display ("04:31.500"), SRT ("00:04:31,500"), or bare
// second values.
func parseTimeFlag(name, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	seconds, err := timecode.ParseStrict(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", name, value, err)
	}
	return seconds, nil
}

// parsePosition converts a 1-based position argument into a 0-based index.
func parsePosition(label, arg string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid %s %q (expected a position starting at 1)", label, arg)
	}
	return pos - 1, nil
}

func parseVideoStatus(value string) (subtitle.VideoStatus, error) {
	status := subtitle.VideoStatus(strings.ToLower(strings.TrimSpace(value)))
	if !subtitle.ValidVideoStatus(status) {
		return "", fmt.Errorf("unknown status %q (expected one of %s)",
			value, strings.Join(subtitle.VideoStatusValues(), ", "))
	}
	return status, nil
}

func parseSegmentStatus(value string) (subtitle.SegmentStatus, error) {
	status := subtitle.SegmentStatus(strings.ToLower(strings.TrimSpace(value)))
	if !subtitle.ValidSegmentStatus(status) {
		return "", fmt.Errorf("unknown segment status %q", value)
	}
	return status, nil
}

// truncateText shortens long subtitle lines for table cells. Cuts happen on
// rune boundaries so multi-byte text stays valid.
func truncateText(value string, max int) string {
	if max <= 3 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-3]) + "..."
}

func timeRange(start, end float64) string {
	return timecode.Format(start) + " - " + timecode.Format(end)
}
