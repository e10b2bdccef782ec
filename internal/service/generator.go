package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"topogen/internal/catalog"
	"topogen/internal/config"
	"topogen/internal/domain"
	"topogen/internal/inventory"
	"topogen/internal/loader"
	"topogen/internal/logging"
	"topogen/internal/metrics"
	"topogen/internal/repository"
	"topogen/internal/resolver"
)

// StdinPath is the request path that reads the request from stdin
const StdinPath = loader.StdinPath

// Result is the outcome of one successful generation
type Result struct {
	Topology  *domain.Topology
	Inventory *inventory.Inventory
	Snapshot  *domain.Snapshot // nil when no store is configured
}

// Generator runs the request → inventory pipeline for one source file
type Generator struct {
	source     *config.Source
	sourcePath string
	specs      *catalog.DirCatalog
	catalog    *catalog.CachedCatalog
	resolver   *resolver.Resolver
	repo       repository.Repository
	eventBus   *EventBus
	stdin      io.Reader
	logger     *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithRepository records every successful generation as a snapshot
func WithRepository(repo repository.Repository) Option {
	return func(g *Generator) {
		g.repo = repo
	}
}

// WithEventBus sets the bus generation events are published on
func WithEventBus(bus *EventBus) Option {
	return func(g *Generator) {
		if bus != nil {
			g.eventBus = bus
		}
	}
}

// WithStdin sets the reader used when the request path is "-"
func WithStdin(r io.Reader) Option {
	return func(g *Generator) {
		g.stdin = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator builds a generator for a loaded source file
func NewGenerator(src *config.Source, sourcePath string, opts ...Option) (*Generator, error) {
	if src == nil {
		return nil, fmt.Errorf("source is required")
	}

	g := &Generator{
		source:     src,
		sourcePath: sourcePath,
		eventBus:   NewEventBus(),
		stdin:      os.Stdin,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.specs = catalog.NewDirCatalog(src.DeviceSpecs)
	cached, err := catalog.NewCachedCatalog(g.specs, src.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}
	g.catalog = cached

	g.resolver = resolver.New(g.catalog,
		resolver.WithLocations(src.LocationMap()),
		resolver.WithLogger(g.logger),
	)

	return g, nil
}

// Source returns the source file the generator was built from
func (g *Generator) Source() *config.Source {
	return g.source
}

// Catalog returns the uncached device spec directory
func (g *Generator) Catalog() *catalog.DirCatalog {
	return g.specs
}

// Events returns the generator's event bus
func (g *Generator) Events() *EventBus {
	return g.eventBus
}

// Inputs returns the paths whose changes affect the generated inventory
func (g *Generator) Inputs() []string {
	var paths []string
	if g.sourcePath != "" {
		paths = append(paths, g.sourcePath)
	}
	if g.source.Request != StdinPath {
		paths = append(paths, g.source.Request)
	}
	return append(paths, g.source.DeviceSpecs)
}

// Reload drops cached device specs so edited spec files are read again
func (g *Generator) Reload() {
	g.catalog.Purge()
	g.eventBus.Publish(Event{Type: EventCatalogReloaded})
}

// LoadRequest reads the request named by the source file
func (g *Generator) LoadRequest() (*domain.TopologyRequest, error) {
	if g.source.Request == StdinPath {
		return loader.ReadRequest(g.stdin)
	}
	return loader.LoadRequest(g.source.Request)
}

// Generate loads the configured request and generates its inventory
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	req, err := g.LoadRequest()
	if err != nil {
		g.fail(err)
		return nil, err
	}
	return g.GenerateFrom(ctx, req)
}

// GenerateFrom resolves req and emits it into a fresh inventory. Nothing is
// emitted or stored unless every host resolves.
func (g *Generator) GenerateFrom(ctx context.Context, req *domain.TopologyRequest) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	}()

	topo, err := g.resolver.Resolve(req)
	if err != nil {
		g.fail(err)
		return nil, err
	}

	inv := inventory.New()
	if err := resolver.Emit(topo, inv); err != nil {
		err = fmt.Errorf("emit inventory: %w", err)
		g.fail(err)
		return nil, err
	}

	result := &Result{Topology: topo, Inventory: inv}

	if g.repo != nil {
		snap := &domain.Snapshot{
			Source:   g.sourcePath,
			Location: req.Location,
			Site:     req.Site,
		}
		if _, err := g.repo.SaveSnapshot(ctx, snap, topo); err != nil {
			err = fmt.Errorf("save snapshot: %w", err)
			g.fail(err)
			return nil, err
		}
		result.Snapshot = snap
	}

	metrics.Generations.WithLabelValues("ok").Inc()
	metrics.HostsResolved.Add(float64(len(topo.Hosts)))

	g.logger.Info("inventory generated",
		"location", req.Location,
		"site", req.Site,
		"hosts", len(topo.Hosts),
		"duration", time.Since(start))

	g.eventBus.Publish(Event{
		Type: EventInventoryGenerated,
		Payload: map[string]interface{}{
			"location": req.Location,
			"site":     req.Site,
			"hosts":    len(topo.Hosts),
		},
	})

	return result, nil
}

func (g *Generator) fail(err error) {
	metrics.Generations.WithLabelValues("error").Inc()
	g.eventBus.Publish(Event{
		Type:    EventGenerationFailed,
		Payload: map[string]string{"error": err.Error()},
	})
}
