package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/trackflow/internal/cache"
	"github.com/jonathan/trackflow/internal/config"
	"github.com/jonathan/trackflow/internal/db"
	"github.com/jonathan/trackflow/internal/session"
	"github.com/jonathan/trackflow/internal/store"
)

// resolveConfig merges CLI flags over the config file over environment
// variables. Flags always win; the config file fills gaps; env vars are the
// last resort.
func resolveConfig() (config.Config, error) {
	flags := config.Config{
		UserID:      flagUserID,
		DatabaseURL: flagDatabaseURL,
		CachePath:   flagCachePath,
		SettleMS:    flagSettleMS,
		Verbose:     flagVerbose,
	}

	merged := flags
	if flagConfigPath != "" {
		fileCfg, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		merged = flags.MergeWithDefaults(*fileCfg)
		merged.Verbose = flagVerbose || fileCfg.Verbose
	}

	merged = merged.MergeWithDefaults(config.Config{
		UserID:      os.Getenv("TRACKFLOW_USER_ID"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	})

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// openSession wires the persistence tiers and hydrates a session for the
// configured user. The returned teardown flushes any pending remote write
// (one-shot commands would otherwise lose it) and closes everything.
func openSession(ctx context.Context, cfg config.Config) (*session.Session, func(), error) {
	if cfg.UserID == "" {
		return nil, nil, fmt.Errorf("a user id is required (--user, config file, or TRACKFLOW_USER_ID)")
	}
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}

	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("a database URL is required (--database-url, config file, or DATABASE_URL)")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}

	var local cache.Cache
	var closeCache func()
	if cfg.CachePath != "" {
		sqliteCache, err := cache.NewSQLite(cfg.CachePath)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		local = sqliteCache
		closeCache = func() { _ = sqliteCache.Close() }
	} else {
		local = cache.NewMemory()
		closeCache = func() {}
	}

	dual := store.NewDualTier(local, database, time.Duration(cfg.SettleMS)*time.Millisecond, nil)
	sess, err := session.Open(ctx, userID, dual)
	if err != nil {
		dual.Close()
		closeCache()
		database.Close()
		return nil, nil, err
	}

	teardown := func() {
		sess.Flush(context.Background())
		sess.Close()
		closeCache()
		database.Close()
	}
	return sess, teardown, nil
}
