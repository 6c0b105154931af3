package videostore

import (
	"context"
	"errors"
	"fmt"

	"subtrack/internal/config"
	"subtrack/internal/subtitle"
)

// ErrVideoNotFound is returned when an id matches no stored video.
var ErrVideoNotFound = errors.New("video not found")

// VideoFields carries the caller-editable document attributes for create and
// whole-document update. Subtitle collections are written only through the
// dedicated partial updates.
type VideoFields struct {
	Title             string
	Link              string
	Status            subtitle.VideoStatus
	PlatformsUploaded []subtitle.PlatformUpload
}

// WorkInfo aggregates the dashboard counters derived from video statuses.
type WorkInfo struct {
	ToSplit         int
	ToUpload        int
	ProcessedVideos int
	CountsByStatus  map[subtitle.VideoStatus]int
	LastVideo       *subtitle.Video
}

// Store is the persistence boundary for video documents.
//
// UpdateVideoLanguages and UpdateVideoSubtitles each replace exactly one
// sub-tree and are independent calls: the save protocol may issue several in
// sequence and a later failure does not roll back an earlier success.
type Store interface {
	GetVideo(ctx context.Context, id string) (*subtitle.Video, error)
	ListVideos(ctx context.Context) ([]*subtitle.Video, error)
	CreateVideo(ctx context.Context, fields VideoFields) (*subtitle.Video, error)
	UpdateVideo(ctx context.Context, id string, fields VideoFields) (*subtitle.Video, error)
	DeleteVideo(ctx context.Context, id string) error
	UpdateVideoLanguages(ctx context.Context, id string, languages []subtitle.LanguagePack) (*subtitle.Video, error)
	UpdateVideoSubtitles(ctx context.Context, id string, kind subtitle.Kind, subs []subtitle.Subtitle) (*subtitle.Video, error)
	WorkInfo(ctx context.Context) (WorkInfo, error)
	Close() error
}

// Open constructs the store backend named by the configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg)
	case config.BackendMongo:
		return OpenMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func validateFields(fields VideoFields) error {
	if fields.Title == "" {
		return errors.New("video title must be set")
	}
	if fields.Status == "" {
		return errors.New("video status must be set")
	}
	if !subtitle.ValidVideoStatus(fields.Status) {
		return fmt.Errorf("video status %q is not valid", fields.Status)
	}
	return nil
}

func workInfoFromCounts(counts map[subtitle.VideoStatus]int, last *subtitle.Video) WorkInfo {
	return WorkInfo{
		ToSplit:         counts[subtitle.VideoSplitted],
		ToUpload:        counts[subtitle.VideoUploaded],
		ProcessedVideos: counts[subtitle.VideoUploaded],
		CountsByStatus:  counts,
		LastVideo:       last,
	}
}
