package subtitle

import (
	"testing"
)

func TestSortByStartIsStable(t *testing.T) {
	subs := []Subtitle{
		{StartTime: 5, Text: "five"},
		{StartTime: 1, Text: "one-a"},
		{StartTime: 1, Text: "one-b"},
		{StartTime: 3, Text: "three"},
	}
	SortByStart(subs)
	got := make([]string, 0, len(subs))
	for _, sub := range subs {
		got = append(got, sub.Text)
	}
	want := []string{"one-a", "one-b", "three", "five"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	video := Video{
		ID: "v1",
		Languages: []LanguagePack{{
			Language: "fr",
			Items: []Segment{{
				ID:        "seg-1",
				Subtitles: []Subtitle{{StartTime: 1, Text: "bonjour"}},
			}},
		}},
		OriginalSubtitles: []Subtitle{{StartTime: 0, Text: "hello"}},
	}
	clone := video.Clone()
	clone.Languages[0].Items[0].Subtitles[0].Text = "changed"
	clone.OriginalSubtitles[0].Text = "changed"

	if video.Languages[0].Items[0].Subtitles[0].Text != "bonjour" {
		t.Fatal("clone shares segment subtitles with the source")
	}
	if video.OriginalSubtitles[0].Text != "hello" {
		t.Fatal("clone shares video-scoped subtitles with the source")
	}
}

func TestFindLanguageIgnoresCase(t *testing.T) {
	video := Video{Languages: []LanguagePack{{Language: "fr"}, {Language: "en"}}}
	if got := video.FindLanguage("EN"); got != 1 {
		t.Fatalf("FindLanguage(EN) = %d, want 1", got)
	}
	if got := video.FindLanguage("de"); got != -1 {
		t.Fatalf("FindLanguage(de) = %d, want -1", got)
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := ParseKind("original"); err != nil || kind != KindOriginal {
		t.Fatalf("ParseKind(original) = %v, %v", kind, err)
	}
	if kind, err := ParseKind("NEW"); err != nil || kind != KindNew {
		t.Fatalf("ParseKind(NEW) = %v, %v", kind, err)
	}
	if kind, err := ParseKind("new_subtitles"); err != nil || kind != KindNew {
		t.Fatalf("ParseKind(new_subtitles) = %v, %v", kind, err)
	}
	if _, err := ParseKind("bogus"); err == nil {
		t.Fatal("ParseKind(bogus) succeeded")
	}
}

func TestStatusValidation(t *testing.T) {
	if !ValidVideoStatus(VideoSplitted) {
		t.Fatal("splitted should be a valid video status")
	}
	if ValidVideoStatus("archived") {
		t.Fatal("archived should not be a valid video status")
	}
	if !ValidSegmentStatus(SegmentPending) {
		t.Fatal("pending should be a valid segment status")
	}
	if ValidSegmentStatus("splitted") {
		t.Fatal("splitted is not a segment status")
	}
}
