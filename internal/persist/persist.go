package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"subtrack/internal/aggregate"
	"subtrack/internal/config"
	"subtrack/internal/logging"
	"subtrack/internal/subtitle"
	"subtrack/internal/videostore"
)

// ErrNothingToSave indicates the aggregate has no dirty collections.
var ErrNothingToSave = errors.New("nothing to save")

// Result records the outcome of one write in the save sequence. Attempted is
// false when the write was skipped, either because the collection was clean
// or because an earlier write already failed.
type Result struct {
	Attempted bool
	Err       error
}

// Report collects the per-collection results of one save.
type Report struct {
	Languages Result
	Original  Result
	New       Result
}

// Err returns the first failure in sequence order, or nil.
func (r Report) Err() error {
	for _, res := range []Result{r.Languages, r.Original, r.New} {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// Failed reports whether any attempted write failed.
func (r Report) Failed() bool {
	return r.Err() != nil
}

// Saver writes dirty aggregate collections through a video store. Each write
// runs under its own timeout.
type Saver struct {
	store   videostore.Store
	timeout time.Duration
	logger  *slog.Logger
}

// NewSaver builds a Saver around the given store. A nil logger discards.
func NewSaver(store videostore.Store, cfg *config.Config, logger *slog.Logger) *Saver {
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := time.Duration(cfg.Save.TimeoutSeconds) * time.Second
	return &Saver{store: store, timeout: timeout, logger: logger}
}

// Save flushes every dirty collection of the aggregate. Writes run
// sequentially in a fixed order and stop at the first failure; collections
// persisted before the failure stay persisted. Dirty flags clear only for
// collections whose write succeeded.
func (s *Saver) Save(ctx context.Context, agg *aggregate.Aggregate) (Report, error) {
	var report Report
	if !agg.LanguagesDirty() && !agg.KindDirty(aggregate.KindOriginal) && !agg.KindDirty(aggregate.KindNew) {
		return report, ErrNothingToSave
	}

	id := agg.VideoID()
	failed := false

	if agg.LanguagesDirty() {
		report.Languages = s.saveLanguages(ctx, id, agg)
		failed = report.Languages.Err != nil
	}
	if !failed && agg.KindDirty(aggregate.KindOriginal) {
		report.Original = s.saveKind(ctx, id, agg, aggregate.KindOriginal)
		failed = report.Original.Err != nil
	}
	if !failed && agg.KindDirty(aggregate.KindNew) {
		report.New = s.saveKind(ctx, id, agg, aggregate.KindNew)
	}

	if err := report.Err(); err != nil {
		return report, fmt.Errorf("save video %s: %w", id, err)
	}
	return report, nil
}

func (s *Saver) saveLanguages(ctx context.Context, id string, agg *aggregate.Aggregate) Result {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.store.UpdateVideoLanguages(callCtx, id, agg.Languages())
	if err != nil {
		s.logger.Error("persist languages failed", "video", id, "error", err)
		return Result{Attempted: true, Err: err}
	}
	agg.ClearLanguagesDirty()
	s.logger.Info("persisted languages", "video", id, "packs", len(agg.Languages()))
	return Result{Attempted: true}
}

func (s *Saver) saveKind(ctx context.Context, id string, agg *aggregate.Aggregate, kind aggregate.Kind) Result {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	subs := agg.VideoSubtitles(kind)
	_, err := s.store.UpdateVideoSubtitles(callCtx, id, subtitle.Kind(kind), subs)
	if err != nil {
		s.logger.Error("persist subtitles failed", "video", id, "kind", string(kind), "error", err)
		return Result{Attempted: true, Err: err}
	}
	agg.ClearKindDirty(kind)
	s.logger.Info("persisted subtitles", "video", id, "kind", string(kind), "count", len(subs))
	return Result{Attempted: true}
}
