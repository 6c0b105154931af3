package subimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"subtrack/internal/subtitle"
	"subtrack/internal/timecode"
)

// Format identifies a supported import payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
)

var (
	// ErrImport marks any import failure.
	ErrImport = errors.New("subtitle import failed")
	// ErrUnsupportedFormat is returned for file types the importer does not read.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrImport)
)

// Detect infers the payload format from a filename extension.
func Detect(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".srt":
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Import parses content in the given format and returns subtitles in payload
// order. Sorting is the aggregate's concern, not the importer's.
func Import(content string, format Format) ([]subtitle.Subtitle, error) {
	switch format {
	case FormatJSON:
		return importJSON(content)
	case FormatSRT:
		return importSRT(content)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// ImportFile is the Detect+Import composition used by callers holding a
// filename alongside the raw text.
func ImportFile(filename, content string) ([]subtitle.Subtitle, error) {
	format, err := Detect(filename)
	if err != nil {
		return nil, err
	}
	return Import(content, format)
}

// flexSeconds decodes a time value that may arrive as a JSON number or as any
// textual timecode form. Decoding never fails; bad values are flagged so the
// record can be dropped instead of poisoning the whole array.
type flexSeconds struct {
	Seconds float64
	Valid   bool
}

func (f *flexSeconds) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		f.Seconds = number
		f.Valid = true
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		seconds, parseErr := timecode.ParseStrict(text)
		if parseErr == nil {
			f.Seconds = seconds
			f.Valid = true
		}
		return nil
	}
	return nil
}

type jsonRecord struct {
	StartTime flexSeconds `json:"startTime"`
	EndTime   flexSeconds `json:"endTime"`
	Title     string      `json:"title"`
	Text      string      `json:"text"`
	Language  string      `json:"language"`
}

func importJSON(content string) ([]subtitle.Subtitle, error) {
	var records []jsonRecord
	if err := json.Unmarshal([]byte(content), &records); err != nil {
		return nil, fmt.Errorf("%w: decode json array: %v", ErrImport, err)
	}

	subs := make([]subtitle.Subtitle, 0, len(records))
	for _, record := range records {
		if !record.StartTime.Valid || !record.EndTime.Valid {
			continue
		}
		text := record.Title
		if text == "" {
			text = record.Text
		}
		subs = append(subs, subtitle.Subtitle{
			StartTime: record.StartTime.Seconds,
			EndTime:   record.EndTime.Seconds,
			Text:      text,
			Language:  record.Language,
		})
	}
	return subs, nil
}

func importSRT(content string) ([]subtitle.Subtitle, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(normalized), "\n\n")

	var subs []subtitle.Subtitle
	for _, block := range blocks {
		if sub, ok := parseBlock(block); ok {
			subs = append(subs, sub)
		}
	}
	if subs == nil {
		subs = []subtitle.Subtitle{}
	}
	return subs, nil
}

// parseBlock reads one cue. The leading numeric index line is optional; some
// exporters omit it and start with the time-range line.
func parseBlock(block string) (subtitle.Subtitle, bool) {
	lines := make([]string, 0, 4)
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return subtitle.Subtitle{}, false
	}

	timingIndex := 0
	if !strings.Contains(lines[0], "-->") {
		timingIndex = 1
	}
	if timingIndex >= len(lines) {
		return subtitle.Subtitle{}, false
	}

	start, end, ok := parseRange(lines[timingIndex])
	if !ok {
		return subtitle.Subtitle{}, false
	}
	text := strings.Join(lines[timingIndex+1:], " ")
	return subtitle.Subtitle{StartTime: start, EndTime: end, Text: text}, true
}

func parseRange(line string) (float64, float64, bool) {
	startText, endText, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, false
	}
	start, errStart := timecode.ParseStrict(strings.TrimSpace(startText))
	end, errEnd := timecode.ParseStrict(strings.TrimSpace(endText))
	if errStart != nil || errEnd != nil {
		return 0, 0, false
	}
	return start, end, true
}
