package testsupport

import (
	"context"
	"testing"

	"subtrack/internal/config"
	"subtrack/internal/subtitle"
	"subtrack/internal/videostore"
)

// MustOpenStore opens a SQLite video store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *videostore.SQLite {
	t.Helper()

	store, err := videostore.OpenSQLite(cfg)
	if err != nil {
		t.Fatalf("videostore.OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewVideo creates a pending video for tests using the provided store.
func NewVideo(t testing.TB, store videostore.Store, title string) *subtitle.Video {
	t.Helper()

	video, err := store.CreateVideo(context.Background(), videostore.VideoFields{
		Title:  title,
		Link:   "https://videos.example/" + title,
		Status: subtitle.VideoPending,
	})
	if err != nil {
		t.Fatalf("store.CreateVideo: %v", err)
	}
	return video
}
