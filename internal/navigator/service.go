package navigator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/log"
	"github.com/zjrosen/waypoint/internal/routecache"
)

// Service binds a registry, an executor and one journal into the navigation
// surface applications use: builders, URI navigation and back navigation.
type Service struct {
	registry navigation.RegistryProvider
	executor *Executor
	journal  *navigation.Journal
	routes   *routecache.ReadThrough[navigation.ResolvedPath]
}

var _ navigation.Dispatcher = (*Service)(nil)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRouteCache caches URI resolutions in store for ttl. Only use it once
// the registry is sealed; a cached resolution is not revisited.
func WithRouteCache(store routecache.Store[navigation.ResolvedPath], ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.routes = routecache.NewReadThrough(store, s.resolveURI, ttl, false)
	}
}

// NewJournal creates a journal whose entries carry random UUIDs.
func NewJournal(capacity int) *navigation.Journal {
	return navigation.NewJournal(
		navigation.WithCapacity(capacity),
		navigation.WithIDGenerator(uuid.NewString),
	)
}

// NewService creates a Service. A nil journal gets an unbounded one.
func NewService(registry navigation.RegistryProvider, executor *Executor, journal *navigation.Journal, opts ...ServiceOption) *Service {
	if journal == nil {
		journal = NewJournal(0)
	}
	s := &Service{
		registry: registry,
		executor: executor,
		journal:  journal,
	}
	s.routes = routecache.NewReadThrough[navigation.ResolvedPath](nil, s.resolveURI, 0, true)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBuilder starts a navigation request that dispatches through s.
func (s *Service) CreateBuilder() *navigation.Builder {
	return navigation.NewBuilder(s.registry, s)
}

// Dispatch implements navigation.Dispatcher.
func (s *Service) Dispatch(ctx context.Context, path navigation.ResolvedPath, callbacks ...navigation.Callback) *navigation.Navigation {
	return s.executor.Execute(ctx, path, s.journal, callbacks...)
}

// Resolve parses and resolves uri, consulting the route cache when configured.
func (s *Service) Resolve(ctx context.Context, uri string) (navigation.ResolvedPath, error) {
	return s.routes.Get(ctx, uri)
}

// NavigateURI resolves uri and dispatches it. Resolution errors are returned
// synchronously; execution errors go to the callbacks and the handle.
func (s *Service) NavigateURI(ctx context.Context, uri string, callbacks ...navigation.Callback) (*navigation.Navigation, error) {
	resolved, err := s.Resolve(ctx, uri)
	if err != nil {
		log.ErrorErr(log.CatNav, "resolve failed", err, "uri", uri)
		return nil, err
	}
	return s.Dispatch(ctx, resolved, callbacks...), nil
}

// GoBack returns to the previous journal entry.
func (s *Service) GoBack(ctx context.Context, callbacks ...navigation.Callback) *navigation.Navigation {
	return s.executor.GoBack(ctx, s.journal, callbacks...)
}

// CanGoBack reports whether the journal has an entry before the current one.
func (s *Service) CanGoBack() bool {
	return s.journal.CanGoBack()
}

// Release stops the executor worker serving this service's journal. Call it
// when the window or region owning the journal goes away.
func (s *Service) Release() {
	s.executor.Release(s.journal)
}

// Journal returns the service's journal.
func (s *Service) Journal() *navigation.Journal {
	return s.journal
}

func (s *Service) resolveURI(_ context.Context, uri string) (navigation.ResolvedPath, error) {
	path, err := navigation.Parse(uri)
	if err != nil {
		return navigation.ResolvedPath{}, err
	}
	return navigation.Resolve(path, s.registry)
}
