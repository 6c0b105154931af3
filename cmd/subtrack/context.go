package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subtrack/internal/aggregate"
	"subtrack/internal/config"
	"subtrack/internal/logging"
	"subtrack/internal/persist"
	"subtrack/internal/videostore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the configured store for the duration of one command.
func (c *commandContext) withStore(ctx context.Context, fn func(videostore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := videostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withAggregate loads a video into an editing session, runs fn against it,
// and flushes whatever fn dirtied back to the store.
func (c *commandContext) withAggregate(ctx context.Context, videoID string, fn func(*aggregate.Aggregate) error) error {
	return c.withStore(ctx, func(store videostore.Store) error {
		cfg, err := c.ensureConfig()
		if err != nil {
			return err
		}
		video, err := store.GetVideo(ctx, videoID)
		if err != nil {
			return err
		}
		agg := aggregate.New(*video)
		if err := fn(agg); err != nil {
			return err
		}

		saver := persist.NewSaver(store, cfg, c.ensureLogger())
		if _, err := saver.Save(ctx, agg); err != nil && !errors.Is(err, persist.ErrNothingToSave) {
			return err
		}
		return nil
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
