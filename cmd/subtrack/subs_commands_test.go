package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"subtrack/internal/config"
	"subtrack/internal/subtitle"
	"subtrack/internal/videostore"
)

// writeTestConfig writes a minimal config file over temp directories and
// returns its path plus a matching in-memory config for store access.
func writeTestConfig(t *testing.T) (string, *config.Config) {
	t.Helper()

	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	logDir := filepath.Join(base, "logs")
	cfgPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n", dataDir, logDir)
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.DataDir = dataDir
	cfg.Paths.LogDir = logDir
	return cfgPath, &cfg
}

// seedVideo creates a video holding one original subtitle and releases the
// store lock so a command can open the same database.
func seedVideo(t *testing.T, cfg *config.Config) string {
	t.Helper()

	store, err := videostore.OpenSQLite(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	video, err := store.CreateVideo(ctx, videostore.VideoFields{
		Title:  "import-target",
		Link:   "https://videos.example/import-target",
		Status: subtitle.VideoPending,
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if _, err := store.UpdateVideoSubtitles(ctx, video.ID, subtitle.KindOriginal, []subtitle.Subtitle{
		{StartTime: 0, EndTime: 1, Text: "pre-existing"},
	}); err != nil {
		t.Fatalf("UpdateVideoSubtitles: %v", err)
	}
	return video.ID
}

func fetchVideo(t *testing.T, cfg *config.Config, id string) *subtitle.Video {
	t.Helper()

	store, err := videostore.OpenSQLite(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	video, err := store.GetVideo(context.Background(), id)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	return video
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func writeSubsFile(t *testing.T, payload string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "subs.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write subtitle file: %v", err)
	}
	return path
}

func TestSubsImportReplacesTrack(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)
	videoID := seedVideo(t, cfg)
	subsPath := writeSubsFile(t, `[{"startTime":1,"endTime":2,"title":"imported"}]`)

	runCommand(t, "-c", cfgPath, "subs", "import", videoID, subsPath, "--kind", "original")

	video := fetchVideo(t, cfg, videoID)
	if len(video.OriginalSubtitles) != 1 {
		t.Fatalf("import must replace the track wholesale, got %d subtitles", len(video.OriginalSubtitles))
	}
	if video.OriginalSubtitles[0].Text != "imported" {
		t.Fatalf("unexpected surviving subtitle: %+v", video.OriginalSubtitles[0])
	}
}

func TestSubsImportAppendFlag(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)
	videoID := seedVideo(t, cfg)
	subsPath := writeSubsFile(t, `[{"startTime":1,"endTime":2,"title":"imported"}]`)

	runCommand(t, "-c", cfgPath, "subs", "import", videoID, subsPath, "--kind", "original", "--append")

	video := fetchVideo(t, cfg, videoID)
	if len(video.OriginalSubtitles) != 2 {
		t.Fatalf("--append should keep existing subtitles, got %d", len(video.OriginalSubtitles))
	}
	if video.OriginalSubtitles[0].Text != "pre-existing" || video.OriginalSubtitles[1].Text != "imported" {
		t.Fatalf("unexpected track order: %+v", video.OriginalSubtitles)
	}
}
