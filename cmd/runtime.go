package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/log"
	"github.com/zjrosen/waypoint/internal/manifest"
	"github.com/zjrosen/waypoint/internal/navigator"
	"github.com/zjrosen/waypoint/internal/pubsub"
	"github.com/zjrosen/waypoint/internal/routecache"
	"github.com/zjrosen/waypoint/internal/tracing"
)

// runtime is everything a command needs to navigate: the bootstrapped
// registry and a service driving a simulated host.
type runtime struct {
	manifest *manifest.Manifest
	registry *navigation.Registry
	host     *navigator.StackHost
	executor *navigator.Executor
	service  *navigator.Service
	events   *pubsub.Broker[navigator.Event]
	tracer   *tracing.Provider
}

// loadRegistry loads the configured manifest and bootstraps a registry from it.
func loadRegistry() (*manifest.Manifest, *navigation.Registry, error) {
	m, err := manifest.LoadFile(cfg.Manifest)
	if err != nil {
		return nil, nil, err
	}
	reg := navigation.NewRegistry()
	if err := m.Apply(reg); err != nil {
		return nil, nil, fmt.Errorf("bootstrap registry: %w", err)
	}
	return m, reg, nil
}

func newRuntime() (*runtime, error) {
	m, reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	rt := &runtime{
		manifest: m,
		registry: reg,
		host:     navigator.NewStackHost(),
		events:   pubsub.NewBroker[navigator.Event](),
		tracer:   tp,
	}
	rt.executor = navigator.NewExecutor(rt.host,
		navigator.WithTracer(tp.Tracer()),
		navigator.WithEvents(rt.events),
		navigator.WithQueueSize(cfg.Journal.QueueSize),
	)

	var opts []navigator.ServiceOption
	if cfg.Cache.Enabled {
		store := routecache.NewMemoryStore[navigation.ResolvedPath]("routes", cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		opts = append(opts, navigator.WithRouteCache(store, cfg.Cache.TTL))
	}
	rt.service = navigator.NewService(reg, rt.executor, navigator.NewJournal(cfg.Journal.Capacity), opts...)
	return rt, nil
}

func (rt *runtime) close() {
	rt.executor.Close()
	rt.events.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.tracer.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
	}
}
