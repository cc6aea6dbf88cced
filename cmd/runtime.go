package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/zjrosen/wayfarer/internal/cachemanager"
	"github.com/zjrosen/wayfarer/internal/config"
	"github.com/zjrosen/wayfarer/internal/favorites"
	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/infrastructure/sqlite"
	"github.com/zjrosen/wayfarer/internal/kv"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/posts"
	"github.com/zjrosen/wayfarer/internal/theme"
	"github.com/zjrosen/wayfarer/internal/tracing"
	"github.com/zjrosen/wayfarer/internal/ui/styles"
)

type runtimeOptions struct {
	// Ephemeral keeps all state in memory.
	Ephemeral bool

	// Prompter answers geo permission prompts.
	Prompter geo.Prompter

	// OnPermissionDecided persists prompt answers. Nil keeps them for the
	// process lifetime only.
	OnPermissionDecided func(geo.Permission)
}

// runtime holds the collaborators shared by the TUI and the subcommands.
type runtime struct {
	Store    kv.Store
	Registry *favorites.Registry
	Fetcher  *posts.Fetcher
	Theme    *theme.Service
	Locator  *geo.Locator

	db      *sqlite.DB
	tracing *tracing.Provider
}

func newRuntime(cfg config.Config, opts runtimeOptions) (*runtime, error) {
	rt := &runtime{}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	rt.tracing = provider
	tracer := provider.Tracer()

	if opts.Ephemeral {
		rt.Store = kv.NewMemoryStore(cfg.Store.QuotaBytes)
		log.Info(log.CatDB, "Using in-memory store")
	} else {
		db, err := sqlite.NewDB(cfg.Store.Path, sqlite.WithQuota(cfg.Store.QuotaBytes), sqlite.WithTracer(tracer))
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("opening store: %w", err)
		}
		rt.db = db
		rt.Store = db.Store()
		log.Info(log.CatDB, "Opened store", "path", db.Path())
	}

	rt.Registry = favorites.New(rt.Store)

	client := posts.NewClient(posts.WithBaseURL(cfg.API.BaseURL))
	fetchOpts := []posts.FetcherOption{
		posts.WithTimeout(cfg.API.Timeout),
		posts.WithTracer(tracer),
	}
	if cfg.API.CacheTTL > 0 {
		cache := cachemanager.NewInMemoryCacheManager[string, posts.Post]("posts", cfg.API.CacheTTL, cachemanager.DefaultCleanupInterval)
		fetchOpts = append(fetchOpts, posts.WithCache(cache, cfg.API.CacheTTL))
	}
	rt.Fetcher = posts.NewFetcher(client, fetchOpts...)

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("applying theme: %w", err)
	}
	rt.Theme = theme.NewService(rt.Store, theme.NewTerminalPreference(os.Stdout))
	if mode, err := theme.ParseMode(cfg.Theme.System); err == nil {
		rt.Theme.SystemChanged(mode)
	}

	permission, err := geo.ParsePermission(cfg.Geo.Permission)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	locatorOpts := []geo.LocatorOption{
		geo.WithPermission(permission),
		geo.WithTracer(tracer),
	}
	if opts.Prompter != nil {
		locatorOpts = append(locatorOpts, geo.WithPrompter(opts.Prompter))
	}
	if opts.OnPermissionDecided != nil {
		locatorOpts = append(locatorOpts, geo.OnPermissionDecided(opts.OnPermissionDecided))
	}
	var locProvider geo.Provider
	if cfg.Geo.ProviderURL != "" {
		locProvider = geo.NewHTTPProvider(cfg.Geo.ProviderURL, nil)
	}
	rt.Locator = geo.NewLocator(locProvider, locatorOpts...)

	return rt, nil
}

// Close flushes traces and closes the store.
func (rt *runtime) Close() error {
	var errs []error
	if rt.Fetcher != nil {
		rt.Fetcher.Cancel()
	}
	if rt.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.tracing.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down tracing: %w", err))
		}
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
