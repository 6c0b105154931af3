package subimport

import (
	"errors"
	"testing"
)

func TestDetectByExtension(t *testing.T) {
	if format, err := Detect("export.json"); err != nil || format != FormatJSON {
		t.Fatalf("Detect(export.json) = %v, %v", format, err)
	}
	if format, err := Detect("clip.SRT"); err != nil || format != FormatSRT {
		t.Fatalf("Detect(clip.SRT) = %v, %v", format, err)
	}
	if _, err := Detect("notes.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Detect(notes.txt) err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Detect("no-extension"); !errors.Is(err, ErrImport) {
		t.Fatalf("Detect(no-extension) err = %v, want ErrImport", err)
	}
}

func TestImportJSONTimecodeStrings(t *testing.T) {
	content := `[{"startTime":"00:01.500","endTime":"00:03.000","title":"hi"}]`
	subs, err := Import(content, FormatJSON)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 subtitle, got %d", len(subs))
	}
	if subs[0].StartTime != 1.5 || subs[0].EndTime != 3.0 || subs[0].Text != "hi" {
		t.Fatalf("unexpected subtitle: %+v", subs[0])
	}
}

func TestImportJSONNumbersAndTextFallback(t *testing.T) {
	content := `[{"startTime":1.25,"endTime":2.5,"text":"plain"},{"startTime":3,"endTime":4,"title":"titled","text":"ignored"}]`
	subs, err := Import(content, FormatJSON)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subtitles, got %d", len(subs))
	}
	if subs[0].Text != "plain" || subs[0].StartTime != 1.25 {
		t.Fatalf("unexpected first subtitle: %+v", subs[0])
	}
	if subs[1].Text != "titled" {
		t.Fatalf("title should win over text, got %q", subs[1].Text)
	}
}

func TestImportJSONDropsUnparseableRecords(t *testing.T) {
	content := `[
		{"startTime":"garbage","endTime":"00:02.000","title":"bad"},
		{"startTime":"00:05.000","endTime":"00:06.000","title":"good"}
	]`
	subs, err := Import(content, FormatJSON)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(subs) != 1 || subs[0].Text != "good" {
		t.Fatalf("expected only the valid record, got %+v", subs)
	}
}

func TestImportJSONKeepsPayloadOrder(t *testing.T) {
	content := `[{"startTime":9,"endTime":10,"title":"late"},{"startTime":1,"endTime":2,"title":"early"}]`
	subs, err := Import(content, FormatJSON)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if subs[0].Text != "late" || subs[1].Text != "early" {
		t.Fatalf("import must not re-sort, got %+v", subs)
	}
}

func TestImportJSONRejectsNonArray(t *testing.T) {
	if _, err := Import(`{"startTime":1}`, FormatJSON); !errors.Is(err, ErrImport) {
		t.Fatalf("expected ErrImport, got %v", err)
	}
	if _, err := Import(`not json`, FormatJSON); !errors.Is(err, ErrImport) {
		t.Fatalf("expected ErrImport, got %v", err)
	}
}

const sampleSRT = `1
00:00:01,000 --> 00:00:02,500
First line
continued

2
00:00:03,000 --> 00:00:04,000
Second cue
`

func TestImportSRT(t *testing.T) {
	subs, err := Import(sampleSRT, FormatSRT)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(subs))
	}
	if subs[0].StartTime != 1.0 || subs[0].EndTime != 2.5 {
		t.Fatalf("unexpected first cue times: %+v", subs[0])
	}
	if subs[0].Text != "First line continued" {
		t.Fatalf("multi-line text should join with a space, got %q", subs[0].Text)
	}
	if subs[1].Text != "Second cue" {
		t.Fatalf("unexpected second cue: %+v", subs[1])
	}
}

func TestImportSRTWithoutIndexLines(t *testing.T) {
	content := "00:00:01,000 --> 00:00:02,000\nNo index here\n\n00:00:03,000 --> 00:00:04,000\nSecond"
	subs, err := Import(content, FormatSRT)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(subs) != 2 || subs[0].Text != "No index here" {
		t.Fatalf("unexpected cues: %+v", subs)
	}
}

func TestImportSRTSkipsBadBlocks(t *testing.T) {
	content := "1\nnot a time range\nText\n\n2\n00:00:05,000 --> 00:00:06,000\nKept"
	subs, err := Import(content, FormatSRT)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(subs) != 1 || subs[0].Text != "Kept" {
		t.Fatalf("bad blocks should be skipped, got %+v", subs)
	}
}

func TestImportFileComposesDetect(t *testing.T) {
	subs, err := ImportFile("clip.srt", "00:00:01,000 --> 00:00:02,000\nHello")
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(subs) != 1 || subs[0].Text != "Hello" {
		t.Fatalf("unexpected result: %+v", subs)
	}
	if _, err := ImportFile("clip.vtt", ""); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
