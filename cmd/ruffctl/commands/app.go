package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/ruffctl/ruffctl/internal/catalog"
	"github.com/ruffctl/ruffctl/internal/config"
	"github.com/ruffctl/ruffctl/internal/engine"
	"github.com/ruffctl/ruffctl/internal/history"
	"github.com/ruffctl/ruffctl/internal/logger"
	"github.com/ruffctl/ruffctl/internal/prefstore"
)

// app bundles the wired-up collaborators a command needs. Commands build
// one app per invocation and close it when done; nothing is shared through
// package state.
type app struct {
	cfg     *config.Config
	engine  *engine.Engine
	prefs   *prefstore.Store
	journal *history.Store
}

// fileCatalogLoader serves the catalog from a local file fetched earlier.
type fileCatalogLoader struct {
	path string
}

func (f fileCatalogLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.LoadFile(f.path)
}

// newApp wires the engine with its stores and loads the rule data.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	prefs, err := prefstore.Open(prefstore.Options{Dir: cfg.Storage.Dir})
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	var journal *history.Store
	if cfg.History.Enabled {
		journal, err = history.NewStore(history.StoreConfig{Path: cfg.History.Path})
		if err != nil {
			// History is an add-on; run without it rather than failing.
			logger.Warn("opening history store: %v", err)
			journal = nil
		}
	}

	eng := engine.New(engine.Config{
		Catalog: pickCatalogLoader(cfg),
		Prefs:   prefs,
		Journal: journalOrNil(journal),
	})

	a := &app{cfg: cfg, engine: eng, prefs: prefs, journal: journal}
	if err := eng.LoadData(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("loading rule data: %w", err)
	}
	return a, nil
}

// pickCatalogLoader prefers a previously fetched local catalog file and
// falls back to the catalog endpoint.
func pickCatalogLoader(cfg *config.Config) engine.CatalogLoader {
	if cfg.Catalog.File != "" {
		if _, err := os.Stat(cfg.Catalog.File); err == nil {
			logger.Debug("using local catalog file %s", cfg.Catalog.File)
			return fileCatalogLoader{path: cfg.Catalog.File}
		}
	}
	return catalog.NewLoader(cfg.Catalog.URL, cfg.Catalog.Timeout)
}

// journalOrNil avoids storing a typed nil in the engine's interface field.
func journalOrNil(j *history.Store) engine.Journal {
	if j == nil {
		return nil
	}
	return j
}

// Close releases the app's stores.
func (a *app) Close() {
	if a.prefs != nil {
		_ = a.prefs.Close()
	}
	if a.journal != nil {
		_ = a.journal.Close()
	}
}
