package root

import (
	"context"
	"database/sql"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService opens the database, seeds the catalog and runs the day
// rollover so every command sees today's pool.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	svc := engine.NewService(db,
		engine.WithLogger(logger),
		engine.WithLocation(loc),
		engine.WithPolicy(cfg.Policy()),
	)
	if _, err := svc.SeedCatalog(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	st, err := svc.LoadStats(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if _, err := svc.Tick(ctx, engine.LevelForTotalXP(st.TotalExp)); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
