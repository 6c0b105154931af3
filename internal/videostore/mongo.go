package videostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"subtrack/internal/config"
	"subtrack/internal/subtitle"
)

const mongoConnectTimeout = 10 * time.Second

// Mongo is the video store backed by a MongoDB collection. It speaks the same
// document shape the upstream dashboard wrote, so both can point at one
// database.
type Mongo struct {
	client *mongo.Client
	videos *mongo.Collection
}

// OpenMongo connects to the configured MongoDB deployment and verifies the
// connection with a ping.
func OpenMongo(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Store.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Mongo{
		client: client,
		videos: client.Database(cfg.Store.MongoDatabase).Collection("videos"),
	}, nil
}

// Close disconnects from the deployment.
func (m *Mongo) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// CreateVideo inserts a new video document with empty subtitle collections.
func (m *Mongo) CreateVideo(ctx context.Context, fields VideoFields) (*subtitle.Video, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	video := subtitle.Video{
		ID:                uuid.NewString(),
		Title:             fields.Title,
		Link:              fields.Link,
		Status:            fields.Status,
		Languages:         []subtitle.LanguagePack{},
		OriginalSubtitles: []subtitle.Subtitle{},
		NewSubtitles:      []subtitle.Subtitle{},
		PlatformsUploaded: fields.PlatformsUploaded,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if video.PlatformsUploaded == nil {
		video.PlatformsUploaded = []subtitle.PlatformUpload{}
	}
	if _, err := m.videos.InsertOne(ctx, video); err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	return &video, nil
}

// GetVideo fetches a video document by identifier.
func (m *Mongo) GetVideo(ctx context.Context, id string) (*subtitle.Video, error) {
	var video subtitle.Video
	err := m.videos.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &video, nil
}

// ListVideos returns every video ordered by creation time.
func (m *Mongo) ListVideos(ctx context.Context) ([]*subtitle.Video, error) {
	cursor, err := m.videos.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer cursor.Close(ctx)

	var videos []*subtitle.Video
	for cursor.Next(ctx) {
		var video subtitle.Video
		if err := cursor.Decode(&video); err != nil {
			return nil, fmt.Errorf("decode video: %w", err)
		}
		videos = append(videos, &video)
	}
	return videos, cursor.Err()
}

// UpdateVideo replaces the document-level fields, leaving every subtitle
// collection as stored.
func (m *Mongo) UpdateVideo(ctx context.Context, id string, fields VideoFields) (*subtitle.Video, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"title":              fields.Title,
		"link":               fields.Link,
		"status":             fields.Status,
		"platforms_uploaded": fields.PlatformsUploaded,
		"updatedAt":          time.Now().UTC(),
	}}
	return m.updateOne(ctx, id, update)
}

// DeleteVideo removes a video document.
func (m *Mongo) DeleteVideo(ctx context.Context, id string) error {
	res, err := m.videos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
	}
	return nil
}

// UpdateVideoLanguages replaces the whole languages tree in one write.
func (m *Mongo) UpdateVideoLanguages(ctx context.Context, id string, languages []subtitle.LanguagePack) (*subtitle.Video, error) {
	if languages == nil {
		languages = []subtitle.LanguagePack{}
	}
	update := bson.M{"$set": bson.M{
		"languages": languages,
		"updatedAt": time.Now().UTC(),
	}}
	return m.updateOne(ctx, id, update)
}

// UpdateVideoSubtitles replaces one of the two video-scoped subtitle arrays.
func (m *Mongo) UpdateVideoSubtitles(ctx context.Context, id string, kind subtitle.Kind, subs []subtitle.Subtitle) (*subtitle.Video, error) {
	switch kind {
	case subtitle.KindOriginal, subtitle.KindNew:
	default:
		return nil, fmt.Errorf("unknown subtitle kind %q", kind)
	}
	if subs == nil {
		subs = []subtitle.Subtitle{}
	}
	update := bson.M{"$set": bson.M{
		string(kind): subs,
		"updatedAt":  time.Now().UTC(),
	}}
	return m.updateOne(ctx, id, update)
}

// WorkInfo returns counts of videos grouped by status plus the newest video.
func (m *Mongo) WorkInfo(ctx context.Context) (WorkInfo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := m.videos.Aggregate(ctx, pipeline)
	if err != nil {
		return WorkInfo{}, fmt.Errorf("count videos: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[subtitle.VideoStatus]int)
	for cursor.Next(ctx) {
		var group struct {
			Status string `bson:"_id"`
			Count  int    `bson:"count"`
		}
		if err := cursor.Decode(&group); err != nil {
			return WorkInfo{}, fmt.Errorf("decode status count: %w", err)
		}
		counts[subtitle.VideoStatus(group.Status)] = group.Count
	}
	if err := cursor.Err(); err != nil {
		return WorkInfo{}, err
	}

	var last *subtitle.Video
	var latest subtitle.Video
	err = m.videos.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})).Decode(&latest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return WorkInfo{}, fmt.Errorf("latest video: %w", err)
	}
	if err == nil {
		last = &latest
	}

	return workInfoFromCounts(counts, last), nil
}

func (m *Mongo) updateOne(ctx context.Context, id string, update bson.M) (*subtitle.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var video subtitle.Video
	err := m.videos.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return &video, nil
}
