package platform

import (
	"github.com/zettelhaus/zettel/pkg/adapters/jsonstore"
	"github.com/zettelhaus/zettel/pkg/agents"
	"github.com/zettelhaus/zettel/pkg/core"
	"github.com/zettelhaus/zettel/pkg/porter"
)

// App is the assembled application graph: the store and every component
// built on top of it. Orchestrator is nil unless a completer was
// provided.
type App struct {
	Store        *jsonstore.Store
	Service      *core.Service
	Importer     *porter.Importer
	Exporter     *porter.Exporter
	Orchestrator *agents.Orchestrator
}

// New opens (or initializes) the data directory and wires the components
// together.
func New(dir string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := jsonstore.Open(dir, jsonstore.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	svc := core.NewService(store.Notes(), store.Flashcards(),
		core.WithLogger(o.logger), core.WithClock(o.clock))

	app := &App{
		Store:    store,
		Service:  svc,
		Importer: porter.NewImporter(svc, o.logger),
		Exporter: porter.NewExporter(svc, o.logger),
	}

	if o.completer != nil {
		app.Orchestrator = agents.NewOrchestrator(store.Tasks(),
			[]agents.Agent{
				agents.NewBookSummaryAgent(svc, o.completer),
				agents.NewWebExtractorAgent(svc, o.completer, o.fetcher),
			},
			agents.WithOrchestratorLogger(o.logger),
			agents.WithOrchestratorClock(o.clock))
	}

	return app, nil
}

// Close releases the store, waiting for in-flight agent runs first.
func (a *App) Close() error {
	if a.Orchestrator != nil {
		a.Orchestrator.Wait()
	}
	return a.Store.Close()
}
