package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/BrandonDHaskell/gatewarden/internal/config"
	"github.com/BrandonDHaskell/gatewarden/internal/db"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store/cached"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store/memory"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store/sqlite"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

type stores struct {
	records  store.RecordStore
	events   store.AccessEventStore
	settings store.SettingsStore
	closers  []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores builds the configured backend and fronts its record store
// with the otter cache when enabled.
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	st := &stores{}

	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("using in-memory store, state is lost on restart")
		st.records = memory.NewRecordStore()
		st.events = memory.NewAccessEventStore()
		st.settings = memory.NewSettingsStore()

	default:
		conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		writer := db.NewWorker(conn)
		st.closers = append(st.closers, func() { closeDB(conn, logger) }, writer.Close)

		st.records = sqlite.NewRecordStore(conn, writer)
		st.events = sqlite.NewAccessEventStore(conn, writer)
		st.settings = sqlite.NewSettingsStore(conn, writer)
		logger.Info("database ready", "path", cfg.DBPath)
	}

	if cfg.CacheSize > 0 {
		rc, err := cached.NewRecordStore(st.records, cached.Config{TTL: cfg.CacheTTL, MaxSize: cfg.CacheSize}, logger)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.records = rc
		st.closers = append(st.closers, rc.Close)
	}

	return st, nil
}

func closeDB(conn *sql.DB, logger *slog.Logger) {
	if err := conn.Close(); err != nil {
		logger.Error("close db", logging.ErrAttr(err))
	}
}
