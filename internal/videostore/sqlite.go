package videostore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subtrack/internal/config"
	"subtrack/internal/subtitle"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must be recreated after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrStoreLocked is returned when another subtrack process holds the store lock.
var ErrStoreLocked = errors.New("video store is locked by another process")

// SQLite is the local video store backed by a SQLite database. Nested
// collections are serialized into JSON columns; the partial updates rewrite
// exactly one column.
type SQLite struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// OpenSQLite opens or creates the database under the configured data
// directory and acquires the single-writer lock.
func OpenSQLite(cfg *config.Config) (*SQLite, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, ErrStoreLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLite{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close releases the database connection and the store lock.
func (s *SQLite) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

func (s *SQLite) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *SQLite) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// CreateVideo inserts a new video document with empty subtitle collections.
func (s *SQLite) CreateVideo(ctx context.Context, fields VideoFields) (*subtitle.Video, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	platformsJSON, err := marshalColumn(fields.PlatformsUploaded)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO videos (
            id, title, link, status, languages_json,
            original_subtitles_json, new_subtitles_json, platforms_json,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, '[]', '[]', '[]', ?, ?, ?)`,
		id,
		fields.Title,
		fields.Link,
		string(fields.Status),
		platformsJSON,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	return s.GetVideo(ctx, id)
}

// GetVideo fetches a video document by identifier.
func (s *SQLite) GetVideo(ctx context.Context, id string) (*subtitle.Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// ListVideos returns every video ordered by creation time.
func (s *SQLite) ListVideos(ctx context.Context) ([]*subtitle.Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*subtitle.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// UpdateVideo replaces the document-level fields, leaving every subtitle
// collection as stored.
func (s *SQLite) UpdateVideo(ctx context.Context, id string, fields VideoFields) (*subtitle.Video, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	platformsJSON, err := marshalColumn(fields.PlatformsUploaded)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET title = ?, link = ?, status = ?, platforms_json = ?, updated_at = ? WHERE id = ?`,
		fields.Title,
		fields.Link,
		string(fields.Status),
		platformsJSON,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return nil, err
	}
	return s.GetVideo(ctx, id)
}

// DeleteVideo removes a video document.
func (s *SQLite) DeleteVideo(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return requireRow(res, id)
}

// UpdateVideoLanguages replaces the whole languages tree in one write.
func (s *SQLite) UpdateVideoLanguages(ctx context.Context, id string, languages []subtitle.LanguagePack) (*subtitle.Video, error) {
	payload, err := marshalColumn(languages)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET languages_json = ?, updated_at = ? WHERE id = ?`,
		payload,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update video languages: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return nil, err
	}
	return s.GetVideo(ctx, id)
}

// UpdateVideoSubtitles replaces one of the two video-scoped subtitle arrays.
func (s *SQLite) UpdateVideoSubtitles(ctx context.Context, id string, kind subtitle.Kind, subs []subtitle.Subtitle) (*subtitle.Video, error) {
	column, err := subtitleColumn(kind)
	if err != nil {
		return nil, err
	}
	payload, err := marshalColumn(subs)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE videos SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		payload,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update video subtitles: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return nil, err
	}
	return s.GetVideo(ctx, id)
}

// WorkInfo returns counts of videos grouped by status plus the newest video.
func (s *SQLite) WorkInfo(ctx context.Context) (WorkInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM videos GROUP BY status`)
	if err != nil {
		return WorkInfo{}, fmt.Errorf("count videos: %w", err)
	}
	defer rows.Close()

	counts := make(map[subtitle.VideoStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return WorkInfo{}, err
		}
		counts[subtitle.VideoStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return WorkInfo{}, err
	}

	var last *subtitle.Video
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY created_at DESC LIMIT 1`)
	video, err := scanVideo(row)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return WorkInfo{}, fmt.Errorf("latest video: %w", err)
	}
	if err == nil {
		last = video
	}

	return workInfoFromCounts(counts, last), nil
}

const videoColumns = "id, title, link, status, languages_json, original_subtitles_json, new_subtitles_json, platforms_json, created_at, updated_at"

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*subtitle.Video, error) {
	var (
		id            string
		title         string
		link          string
		status        string
		languagesJSON string
		originalJSON  string
		newJSON       string
		platformsJSON string
		createdRaw    string
		updatedRaw    string
	)
	if err := scanner.Scan(
		&id,
		&title,
		&link,
		&status,
		&languagesJSON,
		&originalJSON,
		&newJSON,
		&platformsJSON,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	video := &subtitle.Video{
		ID:     id,
		Title:  title,
		Link:   link,
		Status: subtitle.VideoStatus(status),
	}
	if err := json.Unmarshal([]byte(languagesJSON), &video.Languages); err != nil {
		return nil, fmt.Errorf("decode languages: %w", err)
	}
	if err := json.Unmarshal([]byte(originalJSON), &video.OriginalSubtitles); err != nil {
		return nil, fmt.Errorf("decode original subtitles: %w", err)
	}
	if err := json.Unmarshal([]byte(newJSON), &video.NewSubtitles); err != nil {
		return nil, fmt.Errorf("decode new subtitles: %w", err)
	}
	if err := json.Unmarshal([]byte(platformsJSON), &video.PlatformsUploaded); err != nil {
		return nil, fmt.Errorf("decode platform uploads: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	video.CreatedAt = created
	updated, err := time.Parse(time.RFC3339Nano, updatedRaw)
	if err != nil {
		return nil, fmt.Errorf("decode updated_at: %w", err)
	}
	video.UpdatedAt = updated
	return video, nil
}

func marshalColumn(value any) (string, error) {
	if value == nil {
		return "[]", nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode column: %w", err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

func subtitleColumn(kind subtitle.Kind) (string, error) {
	switch kind {
	case subtitle.KindOriginal:
		return "original_subtitles_json", nil
	case subtitle.KindNew:
		return "new_subtitles_json", nil
	default:
		return "", fmt.Errorf("unknown subtitle kind %q", kind)
	}
}

func requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
	}
	return nil
}
