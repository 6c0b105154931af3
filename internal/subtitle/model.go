package subtitle

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// VideoStatus represents the lifecycle of a video document.
type VideoStatus string

const (
	VideoPending    VideoStatus = "pending"
	VideoGenerated  VideoStatus = "generated"
	VideoProcessing VideoStatus = "processing"
	VideoSplitted   VideoStatus = "splitted"
	VideoUploaded   VideoStatus = "uploaded"
	VideoPublished  VideoStatus = "published"
)

var videoStatuses = map[VideoStatus]struct{}{
	VideoPending:    {},
	VideoGenerated:  {},
	VideoProcessing: {},
	VideoSplitted:   {},
	VideoUploaded:   {},
	VideoPublished:  {},
}

// ValidVideoStatus reports whether value is a known video status.
func ValidVideoStatus(value VideoStatus) bool {
	_, ok := videoStatuses[value]
	return ok
}

// VideoStatusValues lists every accepted video status, for CLI help text and
// validation messages.
func VideoStatusValues() []string {
	values := []string{
		string(VideoPending),
		string(VideoGenerated),
		string(VideoProcessing),
		string(VideoSplitted),
		string(VideoUploaded),
		string(VideoPublished),
	}
	return values
}

// SegmentStatus represents the lifecycle of one segment within a language pack.
type SegmentStatus string

const (
	SegmentPending   SegmentStatus = "pending"
	SegmentGenerated SegmentStatus = "generated"
	SegmentUploaded  SegmentStatus = "uploaded"
	SegmentPublished SegmentStatus = "published"
)

var segmentStatuses = map[SegmentStatus]struct{}{
	SegmentPending:   {},
	SegmentGenerated: {},
	SegmentUploaded:  {},
	SegmentPublished: {},
}

// ValidSegmentStatus reports whether value is a known segment status.
func ValidSegmentStatus(value SegmentStatus) bool {
	_, ok := segmentStatuses[value]
	return ok
}

// Subtitle is one timed text line. Language is informational and may diverge
// from the owning pack's code; existing documents do, and nothing corrects them.
type Subtitle struct {
	StartTime float64 `json:"startTime" bson:"startTime"`
	EndTime   float64 `json:"endTime" bson:"endTime"`
	Text      string  `json:"text" bson:"text"`
	Language  string  `json:"language,omitempty" bson:"language,omitempty"`
}

// Segment is a titled, timestamped sub-clip within a language pack. Index
// always equals the segment's position in the pack; deletion renumbers.
type Segment struct {
	ID        string        `json:"id" bson:"id"`
	Index     int           `json:"index" bson:"index"`
	Title     string        `json:"title" bson:"title"`
	Caption   string        `json:"caption" bson:"caption"`
	StartTime float64       `json:"startTime" bson:"startTime"`
	EndTime   float64       `json:"endTime" bson:"endTime"`
	Status    SegmentStatus `json:"status" bson:"status"`
	URL       string        `json:"url,omitempty" bson:"url,omitempty"`
	Subtitles []Subtitle    `json:"subtitles" bson:"subtitles"`
}

// LanguagePack is a video's segment tree for one language code. Codes are
// unique within a video.
type LanguagePack struct {
	Language string    `json:"language" bson:"language"`
	Items    []Segment `json:"items" bson:"items"`
}

// PlatformMetrics holds per-post engagement counters reported by a platform.
type PlatformMetrics struct {
	Views    int `json:"views" bson:"views"`
	Likes    int `json:"likes" bson:"likes"`
	Comments int `json:"comments" bson:"comments"`
	Shares   int `json:"shares" bson:"shares"`
}

// PlatformUpload records that a video was posted to one social platform.
// Tokens and platform APIs live elsewhere; this is bookkeeping only.
type PlatformUpload struct {
	Platform   string          `json:"platform" bson:"platform"`
	AccountID  string          `json:"accountId,omitempty" bson:"accountId,omitempty"`
	UploadDate time.Time       `json:"uploadDate" bson:"uploadDate"`
	PostURL    string          `json:"postUrl,omitempty" bson:"postUrl,omitempty"`
	Metrics    PlatformMetrics `json:"metrics" bson:"metrics"`
}

// Video is the root document. OriginalSubtitles and NewSubtitles are the
// legacy video-scoped arrays; Languages is the nested per-language tree.
type Video struct {
	ID                string           `json:"id" bson:"_id"`
	Title             string           `json:"title" bson:"title"`
	Link              string           `json:"link" bson:"link"`
	Status            VideoStatus      `json:"status" bson:"status"`
	Languages         []LanguagePack   `json:"languages" bson:"languages"`
	OriginalSubtitles []Subtitle       `json:"original_subtitles" bson:"original_subtitles"`
	NewSubtitles      []Subtitle       `json:"new_subtitles" bson:"new_subtitles"`
	PlatformsUploaded []PlatformUpload `json:"platforms_uploaded" bson:"platforms_uploaded"`
	CreatedAt         time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Kind selects one of the two video-scoped subtitle arrays.
type Kind string

const (
	KindOriginal Kind = "original_subtitles"
	KindNew      Kind = "new_subtitles"
)

// ParseKind maps user-facing names onto a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "original", string(KindOriginal):
		return KindOriginal, nil
	case "new", string(KindNew):
		return KindNew, nil
	default:
		return "", fmt.Errorf("unknown subtitle kind %q", value)
	}
}

// SortByStart orders subtitles ascending by start time. The sort is stable so
// equal start times keep their insertion order.
func SortByStart(subs []Subtitle) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].StartTime < subs[j].StartTime
	})
}

// FindLanguage returns the index of the pack with the given code, or -1.
// Codes compare case-insensitively since documents mix cases.
func (v *Video) FindLanguage(code string) int {
	for i := range v.Languages {
		if strings.EqualFold(v.Languages[i].Language, code) {
			return i
		}
	}
	return -1
}

// SegmentCount totals segments across every language pack.
func (v *Video) SegmentCount() int {
	count := 0
	for i := range v.Languages {
		count += len(v.Languages[i].Items)
	}
	return count
}

// Clone returns a deep copy so an editing session owns its tree.
func (v *Video) Clone() Video {
	out := *v
	out.Languages = clonePacks(v.Languages)
	out.OriginalSubtitles = CloneSubtitles(v.OriginalSubtitles)
	out.NewSubtitles = CloneSubtitles(v.NewSubtitles)
	out.PlatformsUploaded = append([]PlatformUpload(nil), v.PlatformsUploaded...)
	return out
}

// CloneSubtitles copies a subtitle slice. A nil input stays nil.
func CloneSubtitles(subs []Subtitle) []Subtitle {
	if subs == nil {
		return nil
	}
	return append([]Subtitle(nil), subs...)
}

func clonePacks(packs []LanguagePack) []LanguagePack {
	if packs == nil {
		return nil
	}
	out := make([]LanguagePack, len(packs))
	for i, pack := range packs {
		out[i] = pack
		out[i].Items = make([]Segment, len(pack.Items))
		for j, seg := range pack.Items {
			out[i].Items[j] = seg
			out[i].Items[j].Subtitles = CloneSubtitles(seg.Subtitles)
		}
	}
	return out
}
