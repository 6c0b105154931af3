package aggregate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"subtrack/internal/langcode"
	"subtrack/internal/subtitle"
)

var (
	// ErrNotFound marks accesses and edits aimed at coordinates that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateLanguage is returned when adding a language code the video already has.
	ErrDuplicateLanguage = errors.New("duplicate language")
)

// Kind aliases the shared selector for the two video-scoped subtitle arrays.
type Kind = subtitle.Kind

// Re-exported for call-site brevity.
const (
	KindOriginal = subtitle.KindOriginal
	KindNew      = subtitle.KindNew
)

// SegmentFields carries the caller-editable segment attributes. ID and Index
// are owned by the aggregate and never settable from outside.
type SegmentFields struct {
	Title     string
	Caption   string
	StartTime float64
	EndTime   float64
	Status    subtitle.SegmentStatus
	URL       string
}

// Aggregate is one video's languages tree plus its two video-scoped subtitle
// arrays, owned by a single editing session.
type Aggregate struct {
	video subtitle.Video

	languagesDirty bool
	originalDirty  bool
	newDirty       bool
}

// New builds an aggregate over a deep copy of video.
func New(video subtitle.Video) *Aggregate {
	return &Aggregate{video: video.Clone()}
}

// VideoID returns the backing video's identifier.
func (a *Aggregate) VideoID() string {
	return a.video.ID
}

// Snapshot returns a deep copy of the current in-memory video.
func (a *Aggregate) Snapshot() subtitle.Video {
	return a.video.Clone()
}

// Languages returns a copy of the language packs.
func (a *Aggregate) Languages() []subtitle.LanguagePack {
	snapshot := a.video.Clone()
	return snapshot.Languages
}

// Language returns the pack with the given code.
func (a *Aggregate) Language(code string) (subtitle.LanguagePack, error) {
	pos := a.video.FindLanguage(code)
	if pos < 0 {
		return subtitle.LanguagePack{}, fmt.Errorf("language %q: %w", code, ErrNotFound)
	}
	snapshot := a.video.Clone()
	return snapshot.Languages[pos], nil
}

// SegmentAt returns the segment at position within the pack with the given code.
func (a *Aggregate) SegmentAt(code string, position int) (subtitle.Segment, error) {
	pack, _, err := a.packAt(code)
	if err != nil {
		return subtitle.Segment{}, err
	}
	if position < 0 || position >= len(pack.Items) {
		return subtitle.Segment{}, fmt.Errorf("segment %d in language %q: %w", position, code, ErrNotFound)
	}
	seg := pack.Items[position]
	seg.Subtitles = subtitle.CloneSubtitles(seg.Subtitles)
	return seg, nil
}

// SubtitleAt returns the subtitle at subPosition within a segment.
func (a *Aggregate) SubtitleAt(code string, segPosition, subPosition int) (subtitle.Subtitle, error) {
	seg, err := a.SegmentAt(code, segPosition)
	if err != nil {
		return subtitle.Subtitle{}, err
	}
	if subPosition < 0 || subPosition >= len(seg.Subtitles) {
		return subtitle.Subtitle{}, fmt.Errorf("subtitle %d in segment %d of language %q: %w", subPosition, segPosition, code, ErrNotFound)
	}
	return seg.Subtitles[subPosition], nil
}

// VideoSubtitles returns a copy of one of the video-scoped arrays.
func (a *Aggregate) VideoSubtitles(kind Kind) []subtitle.Subtitle {
	switch kind {
	case KindOriginal:
		return subtitle.CloneSubtitles(a.video.OriginalSubtitles)
	default:
		return subtitle.CloneSubtitles(a.video.NewSubtitles)
	}
}

// AddLanguage appends a new empty pack for code.
func (a *Aggregate) AddLanguage(code string) error {
	normalized, err := langcode.Normalize(code)
	if err != nil {
		return err
	}
	if a.video.FindLanguage(normalized) >= 0 {
		return fmt.Errorf("language %q: %w", normalized, ErrDuplicateLanguage)
	}
	a.video.Languages = append(a.video.Languages, subtitle.LanguagePack{
		Language: normalized,
		Items:    []subtitle.Segment{},
	})
	a.languagesDirty = true
	return nil
}

// RemoveLanguage deletes a pack and everything it contains.
func (a *Aggregate) RemoveLanguage(code string) error {
	pos := a.video.FindLanguage(code)
	if pos < 0 {
		return fmt.Errorf("language %q: %w", code, ErrNotFound)
	}
	a.video.Languages = append(a.video.Languages[:pos], a.video.Languages[pos+1:]...)
	a.languagesDirty = true
	return nil
}

// AddSegment appends a segment to a pack. The aggregate assigns the id and
// the index, which equals the pack length before the append.
func (a *Aggregate) AddSegment(code string, fields SegmentFields) (subtitle.Segment, error) {
	_, pos, err := a.packAt(code)
	if err != nil {
		return subtitle.Segment{}, err
	}
	status := fields.Status
	if status == "" {
		status = subtitle.SegmentPending
	}
	if !subtitle.ValidSegmentStatus(status) {
		return subtitle.Segment{}, fmt.Errorf("unknown segment status %q", status)
	}
	seg := subtitle.Segment{
		ID:        uuid.NewString(),
		Index:     len(a.video.Languages[pos].Items),
		Title:     fields.Title,
		Caption:   fields.Caption,
		StartTime: fields.StartTime,
		EndTime:   fields.EndTime,
		Status:    status,
		URL:       fields.URL,
		Subtitles: []subtitle.Subtitle{},
	}
	a.video.Languages[pos].Items = append(a.video.Languages[pos].Items, seg)
	a.languagesDirty = true
	return seg, nil
}

// UpdateSegment replaces the editable fields of the segment at position,
// preserving its id, index, and subtitles.
func (a *Aggregate) UpdateSegment(code string, position int, fields SegmentFields) error {
	pos, err := a.segmentIndex(code, position)
	if err != nil {
		return err
	}
	status := fields.Status
	if status == "" {
		status = subtitle.SegmentPending
	}
	if !subtitle.ValidSegmentStatus(status) {
		return fmt.Errorf("unknown segment status %q", status)
	}
	seg := &a.video.Languages[pos].Items[position]
	seg.Title = fields.Title
	seg.Caption = fields.Caption
	seg.StartTime = fields.StartTime
	seg.EndTime = fields.EndTime
	seg.Status = status
	seg.URL = fields.URL
	a.languagesDirty = true
	return nil
}

// RemoveSegment deletes the segment at position and renumbers the segments
// after it so indexes stay contiguous.
func (a *Aggregate) RemoveSegment(code string, position int) error {
	pos, err := a.segmentIndex(code, position)
	if err != nil {
		return err
	}
	items := a.video.Languages[pos].Items
	items = append(items[:position], items[position+1:]...)
	for i := position; i < len(items); i++ {
		items[i].Index = i
	}
	a.video.Languages[pos].Items = items
	a.languagesDirty = true
	return nil
}

// AddSubtitleToSegment appends a subtitle line and re-sorts the segment's list.
func (a *Aggregate) AddSubtitleToSegment(code string, segPosition int, sub subtitle.Subtitle) error {
	pos, err := a.segmentIndex(code, segPosition)
	if err != nil {
		return err
	}
	seg := &a.video.Languages[pos].Items[segPosition]
	seg.Subtitles = append(seg.Subtitles, sub)
	subtitle.SortByStart(seg.Subtitles)
	a.languagesDirty = true
	return nil
}

// UpdateSubtitleInSegment replaces one subtitle line and re-sorts.
func (a *Aggregate) UpdateSubtitleInSegment(code string, segPosition, subPosition int, sub subtitle.Subtitle) error {
	pos, err := a.segmentIndex(code, segPosition)
	if err != nil {
		return err
	}
	seg := &a.video.Languages[pos].Items[segPosition]
	if subPosition < 0 || subPosition >= len(seg.Subtitles) {
		return fmt.Errorf("subtitle %d in segment %d of language %q: %w", subPosition, segPosition, code, ErrNotFound)
	}
	seg.Subtitles[subPosition] = sub
	subtitle.SortByStart(seg.Subtitles)
	a.languagesDirty = true
	return nil
}

// RemoveSubtitleFromSegment deletes one subtitle line. Order is preserved, so
// no re-sort is needed.
func (a *Aggregate) RemoveSubtitleFromSegment(code string, segPosition, subPosition int) error {
	pos, err := a.segmentIndex(code, segPosition)
	if err != nil {
		return err
	}
	seg := &a.video.Languages[pos].Items[segPosition]
	if subPosition < 0 || subPosition >= len(seg.Subtitles) {
		return fmt.Errorf("subtitle %d in segment %d of language %q: %w", subPosition, segPosition, code, ErrNotFound)
	}
	seg.Subtitles = append(seg.Subtitles[:subPosition], seg.Subtitles[subPosition+1:]...)
	a.languagesDirty = true
	return nil
}

// ReplaceSegmentSubtitles swaps a segment's whole subtitle list, re-sorted.
// This is the landing point for file imports targeting a segment.
func (a *Aggregate) ReplaceSegmentSubtitles(code string, segPosition int, subs []subtitle.Subtitle) error {
	pos, err := a.segmentIndex(code, segPosition)
	if err != nil {
		return err
	}
	replacement := subtitle.CloneSubtitles(subs)
	if replacement == nil {
		replacement = []subtitle.Subtitle{}
	}
	subtitle.SortByStart(replacement)
	a.video.Languages[pos].Items[segPosition].Subtitles = replacement
	a.languagesDirty = true
	return nil
}

// ReplaceVideoSubtitles swaps one of the video-scoped arrays wholesale,
// re-sorted by start time.
func (a *Aggregate) ReplaceVideoSubtitles(kind Kind, subs []subtitle.Subtitle) {
	replacement := subtitle.CloneSubtitles(subs)
	if replacement == nil {
		replacement = []subtitle.Subtitle{}
	}
	subtitle.SortByStart(replacement)
	switch kind {
	case KindOriginal:
		a.video.OriginalSubtitles = replacement
		a.originalDirty = true
	default:
		a.video.NewSubtitles = replacement
		a.newDirty = true
	}
}

// AddVideoSubtitle appends to one of the video-scoped arrays and re-sorts.
func (a *Aggregate) AddVideoSubtitle(kind Kind, sub subtitle.Subtitle) {
	subs := a.videoSubtitlesRef(kind)
	*subs = append(*subs, sub)
	subtitle.SortByStart(*subs)
	a.markKindDirty(kind)
}

// UpdateVideoSubtitle replaces one entry in a video-scoped array and re-sorts.
func (a *Aggregate) UpdateVideoSubtitle(kind Kind, position int, sub subtitle.Subtitle) error {
	subs := a.videoSubtitlesRef(kind)
	if position < 0 || position >= len(*subs) {
		return fmt.Errorf("subtitle %d in %s: %w", position, kind, ErrNotFound)
	}
	(*subs)[position] = sub
	subtitle.SortByStart(*subs)
	a.markKindDirty(kind)
	return nil
}

// RemoveVideoSubtitle deletes one entry from a video-scoped array.
func (a *Aggregate) RemoveVideoSubtitle(kind Kind, position int) error {
	subs := a.videoSubtitlesRef(kind)
	if position < 0 || position >= len(*subs) {
		return fmt.Errorf("subtitle %d in %s: %w", position, kind, ErrNotFound)
	}
	*subs = append((*subs)[:position], (*subs)[position+1:]...)
	a.markKindDirty(kind)
	return nil
}

// LanguagesDirty reports whether the languages tree changed since the last save.
func (a *Aggregate) LanguagesDirty() bool { return a.languagesDirty }

// KindDirty reports whether a video-scoped array changed since the last save.
func (a *Aggregate) KindDirty(kind Kind) bool {
	if kind == KindOriginal {
		return a.originalDirty
	}
	return a.newDirty
}

// ClearLanguagesDirty acknowledges a persisted languages tree.
func (a *Aggregate) ClearLanguagesDirty() { a.languagesDirty = false }

// ClearKindDirty acknowledges a persisted video-scoped array.
func (a *Aggregate) ClearKindDirty(kind Kind) {
	if kind == KindOriginal {
		a.originalDirty = false
		return
	}
	a.newDirty = false
}

func (a *Aggregate) packAt(code string) (subtitle.LanguagePack, int, error) {
	pos := a.video.FindLanguage(code)
	if pos < 0 {
		return subtitle.LanguagePack{}, -1, fmt.Errorf("language %q: %w", code, ErrNotFound)
	}
	return a.video.Languages[pos], pos, nil
}

func (a *Aggregate) segmentIndex(code string, position int) (int, error) {
	pack, pos, err := a.packAt(code)
	if err != nil {
		return -1, err
	}
	if position < 0 || position >= len(pack.Items) {
		return -1, fmt.Errorf("segment %d in language %q: %w", position, code, ErrNotFound)
	}
	return pos, nil
}

func (a *Aggregate) videoSubtitlesRef(kind Kind) *[]subtitle.Subtitle {
	if kind == KindOriginal {
		return &a.video.OriginalSubtitles
	}
	return &a.video.NewSubtitles
}

func (a *Aggregate) markKindDirty(kind Kind) {
	if kind == KindOriginal {
		a.originalDirty = true
		return
	}
	a.newDirty = true
}
