package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/finwell/finhealth/internal/cache"
	"github.com/finwell/finhealth/internal/catalog"
	"github.com/finwell/finhealth/internal/store"
	"github.com/finwell/finhealth/internal/survey"
)

// env bundles the initialized collaborators shared by the commands.
type env struct {
	Store   store.Store
	Cache   *cache.Cache
	Catalog *catalog.Catalog
	Service *survey.Service
}

func (e *env) Close() {
	if e.Cache != nil {
		if err := e.Cache.Close(); err != nil {
			zap.L().Warn("close cache", zap.Error(err))
		}
	}
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}
}

// initService opens the store, loads the catalog, and builds the survey
// service with its resolver snapshot.
func initService(ctx context.Context) (*env, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog()
	if err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}

	ch := cache.New(ctx, cfg.Cache.RedisAddr, time.Duration(cfg.Cache.TTLSecs)*time.Second)

	svc, err := survey.New(ctx, st, ch, cat, cfg.Scoring)
	if err != nil {
		ch.Close() //nolint:errcheck
		st.Close() //nolint:errcheck
		return nil, err
	}

	return &env{Store: st, Cache: ch, Catalog: cat, Service: svc}, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return store.NewSQLite(cfg.Store.DatabaseURL)
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	return catalog.Builtin(), nil
}
