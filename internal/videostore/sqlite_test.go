package videostore_test

import (
	"context"
	"errors"
	"testing"

	"subtrack/internal/subtitle"
	"subtrack/internal/testsupport"
	"subtrack/internal/videostore"
)

func TestCreateAndGetVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	created, err := store.CreateVideo(ctx, videostore.VideoFields{
		Title:  "Street Interview 12",
		Link:   "https://videos.example/street-12",
		Status: subtitle.VideoPending,
	})
	if err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected video ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	fetched, err := store.GetVideo(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if fetched.Title != "Street Interview 12" || fetched.Status != subtitle.VideoPending {
		t.Fatalf("unexpected fetched video: %#v", fetched)
	}
	if fetched.Languages == nil || len(fetched.Languages) != 0 {
		t.Fatalf("expected empty languages, got %#v", fetched.Languages)
	}
}

func TestCreateVideoValidatesFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.CreateVideo(context.Background(), videostore.VideoFields{
		Status: subtitle.VideoPending,
	}); err == nil {
		t.Fatal("expected error when title missing")
	}
	if _, err := store.CreateVideo(context.Background(), videostore.VideoFields{
		Title:  "No Status",
		Status: "archived",
	}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestGetVideoNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.GetVideo(context.Background(), "missing")
	if !errors.Is(err, videostore.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestUpdateVideoLeavesSubtitlesAlone(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "update-target")
	if _, err := store.UpdateVideoSubtitles(ctx, video.ID, subtitle.KindOriginal, []subtitle.Subtitle{
		{StartTime: 0, EndTime: 2.5, Text: "bonjour"},
	}); err != nil {
		t.Fatalf("UpdateVideoSubtitles failed: %v", err)
	}

	updated, err := store.UpdateVideo(ctx, video.ID, videostore.VideoFields{
		Title:  "renamed",
		Link:   video.Link,
		Status: subtitle.VideoSplitted,
	})
	if err != nil {
		t.Fatalf("UpdateVideo failed: %v", err)
	}
	if updated.Title != "renamed" || updated.Status != subtitle.VideoSplitted {
		t.Fatalf("unexpected updated video: %#v", updated)
	}
	if len(updated.OriginalSubtitles) != 1 || updated.OriginalSubtitles[0].Text != "bonjour" {
		t.Fatalf("expected original subtitles to survive, got %#v", updated.OriginalSubtitles)
	}
}

func TestUpdateVideoLanguagesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "langs")
	packs := []subtitle.LanguagePack{
		{
			Language: "fr",
			Items: []subtitle.Segment{
				{
					ID:        "seg-1",
					Index:     0,
					Title:     "Intro",
					StartTime: 0,
					EndTime:   12.5,
					Status:    subtitle.SegmentPending,
					Subtitles: []subtitle.Subtitle{
						{StartTime: 0.3, EndTime: 2.1, Text: "salut", Language: "fr"},
					},
				},
			},
		},
		{Language: "en", Items: []subtitle.Segment{}},
	}

	updated, err := store.UpdateVideoLanguages(ctx, video.ID, packs)
	if err != nil {
		t.Fatalf("UpdateVideoLanguages failed: %v", err)
	}
	if len(updated.Languages) != 2 {
		t.Fatalf("expected 2 language packs, got %d", len(updated.Languages))
	}
	if updated.Languages[0].Items[0].Subtitles[0].Text != "salut" {
		t.Fatalf("unexpected nested subtitle: %#v", updated.Languages[0].Items[0])
	}

	fetched, err := store.GetVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if fetched.Languages[0].Items[0].ID != "seg-1" {
		t.Fatalf("expected persisted segment, got %#v", fetched.Languages[0].Items[0])
	}
}

func TestUpdateVideoSubtitlesKinds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "kinds")
	original := []subtitle.Subtitle{{StartTime: 0, EndTime: 1, Text: "source"}}
	translated := []subtitle.Subtitle{{StartTime: 0, EndTime: 1, Text: "translated"}}

	if _, err := store.UpdateVideoSubtitles(ctx, video.ID, subtitle.KindOriginal, original); err != nil {
		t.Fatalf("update original failed: %v", err)
	}
	updated, err := store.UpdateVideoSubtitles(ctx, video.ID, subtitle.KindNew, translated)
	if err != nil {
		t.Fatalf("update new failed: %v", err)
	}
	if updated.OriginalSubtitles[0].Text != "source" || updated.NewSubtitles[0].Text != "translated" {
		t.Fatalf("arrays bled into each other: %#v", updated)
	}

	if _, err := store.UpdateVideoSubtitles(ctx, video.ID, "captions", nil); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDeleteVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "doomed")
	if err := store.DeleteVideo(ctx, video.ID); err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}
	if err := store.DeleteVideo(ctx, video.ID); !errors.Is(err, videostore.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound on second delete, got %v", err)
	}
}

func TestListVideosOrdersByCreation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	first := testsupport.NewVideo(t, store, "first")
	second := testsupport.NewVideo(t, store, "second")

	videos, err := store.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	if videos[0].ID != first.ID || videos[1].ID != second.ID {
		t.Fatalf("unexpected order: %s then %s", videos[0].Title, videos[1].Title)
	}
}

func TestWorkInfoCountsStatuses(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for _, status := range []subtitle.VideoStatus{
		subtitle.VideoSplitted,
		subtitle.VideoSplitted,
		subtitle.VideoUploaded,
		subtitle.VideoPending,
	} {
		video := testsupport.NewVideo(t, store, "wi-"+string(status))
		if _, err := store.UpdateVideo(ctx, video.ID, videostore.VideoFields{
			Title:  video.Title,
			Link:   video.Link,
			Status: status,
		}); err != nil {
			t.Fatalf("UpdateVideo failed: %v", err)
		}
	}

	info, err := store.WorkInfo(ctx)
	if err != nil {
		t.Fatalf("WorkInfo failed: %v", err)
	}
	if info.ToSplit != 2 {
		t.Fatalf("expected 2 videos to split, got %d", info.ToSplit)
	}
	if info.ToUpload != 1 || info.ProcessedVideos != 1 {
		t.Fatalf("unexpected upload counts: %#v", info)
	}
	if info.LastVideo == nil {
		t.Fatal("expected a last video")
	}
}

func TestOpenSQLiteLocksDataDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenStore(t, cfg)
	_ = first

	if _, err := videostore.OpenSQLite(cfg); !errors.Is(err, videostore.ErrStoreLocked) {
		t.Fatalf("expected ErrStoreLocked, got %v", err)
	}
}
