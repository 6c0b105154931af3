package timecode

import (
	"errors"
	"math"
	"testing"
)

func TestFormatPadsComponents(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00.000"},
		{1.5, "00:01.500"},
		{59.999, "00:59.999"},
		{61.25, "01:01.250"},
		{3725.042, "62:05.042"},
		{-3, "00:00.000"},
	}
	for _, tc := range cases {
		if got := Format(tc.seconds); got != tc.want {
			t.Fatalf("Format(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	inputs := []string{"00:00.000", "00:01.500", "00:00.290", "01:01.250", "99:59.999", "62:05.042"}
	for _, input := range inputs {
		if got := Format(Parse(input)); got != input {
			t.Fatalf("Format(Parse(%q)) = %q", input, got)
		}
	}
}

func TestParseSRTTimestamps(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"00:00:01,500", 1.5},
		{"01:02:03,004", 3723.004},
		{"00:10:00,000", 600},
		{"02:00:00,250", 7200.25},
	}
	for _, tc := range cases {
		got, err := ParseStrict(tc.input)
		if err != nil {
			t.Fatalf("ParseStrict(%q): %v", tc.input, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseStrict(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseBareNumbers(t *testing.T) {
	if got := Parse("12.75"); got != 12.75 {
		t.Fatalf("Parse(12.75) = %v", got)
	}
	if got := Parse("42"); got != 42 {
		t.Fatalf("Parse(42) = %v", got)
	}
}

func TestParseDefaultsToZero(t *testing.T) {
	for _, input := range []string{"", "garbage", "aa:bb.cc", "1:2:3:4,5", "xx:yy:zz,000"} {
		if got := Parse(input); got != 0 {
			t.Fatalf("Parse(%q) = %v, want 0", input, got)
		}
	}
}

func TestParseStrictReportsParseError(t *testing.T) {
	for _, input := range []string{"", "garbage", "aa:bb.cc"} {
		_, err := ParseStrict(input)
		if err == nil {
			t.Fatalf("ParseStrict(%q) succeeded", input)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("ParseStrict(%q) returned %T, want *ParseError", input, err)
		}
	}
}

// TestDisplayWithoutFractionFallsToNumeric pins the classification rule: a
// colon without a period is not the display format, so the numeric fallback
// applies and the lenient parser yields zero.
func TestDisplayWithoutFractionFallsToNumeric(t *testing.T) {
	if got := Parse("05:30"); got != 0 {
		t.Fatalf("Parse(05:30) = %v, want 0", got)
	}
}
