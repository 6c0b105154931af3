package main

import (
	"testing"
	"unicode/utf8"
)

func TestParseTimeFlagFormats(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"04:31.500", 271.5},
		{"00:04:31,500", 271.5},
		{"12.25", 12.25},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := parseTimeFlag("start", tc.value)
		if err != nil {
			t.Fatalf("parseTimeFlag(%q) failed: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("parseTimeFlag(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}

	if _, err := parseTimeFlag("start", "xx:yy.zzz"); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestParsePosition(t *testing.T) {
	if pos, err := parsePosition("segment", "3"); err != nil || pos != 2 {
		t.Fatalf("parsePosition(3) = %d, %v", pos, err)
	}
	for _, bad := range []string{"0", "-1", "abc", ""} {
		if _, err := parsePosition("segment", bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSubsTargetValidate(t *testing.T) {
	cases := []struct {
		name    string
		target  subsTarget
		wantErr bool
	}{
		{"kind only", subsTarget{kind: "original"}, false},
		{"segment pair", subsTarget{lang: "fr", segment: "1"}, false},
		{"nothing", subsTarget{}, true},
		{"both", subsTarget{kind: "new", lang: "fr", segment: "1"}, true},
		{"lang without segment", subsTarget{lang: "fr"}, true},
	}
	for _, tc := range cases {
		err := tc.target.validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 40); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateText("abcdefghij", 8); got != "abcde..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func TestTruncateTextKeepsRunesIntact(t *testing.T) {
	got := truncateText("héllo wörld éxtra", 10)
	if got != "héllo w..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	// Multi-byte text shorter than the limit in runes must pass untouched.
	if got := truncateText("héllo wörld", 11); got != "héllo wörld" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
