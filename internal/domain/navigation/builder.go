package navigation

import (
	"context"
	"fmt"
)

// Builder provides a fluent API for composing a navigation path.
//
// The first error stops the composition: later calls are ignored and Build and
// Navigate return that error. Nothing is dispatched for a failed composition.
type Builder struct {
	registry   RegistryProvider
	dispatcher Dispatcher
	absolute   bool
	nodes      []Node
	err        error
}

// NewBuilder creates a builder bound to a registry. dispatcher may be nil when the
// caller only needs Build.
func NewBuilder(registry RegistryProvider, dispatcher Dispatcher) *Builder {
	return &Builder{
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// UseAbsoluteNavigation makes the path replace the current navigation stack.
func (b *Builder) UseAbsoluteNavigation(absolute bool) *Builder {
	b.absolute = absolute
	return b
}

// AddSegment appends a named destination.
func (b *Builder) AddSegment(name string, configure ...ConfigureSegment) *Builder {
	if b.err != nil {
		return b
	}
	b.nodes = append(b.nodes, buildSegment(name, nil, configure))
	return b
}

// AddDescriptor appends a segment built elsewhere.
func (b *Builder) AddDescriptor(s Segment) *Builder {
	if b.err != nil {
		return b
	}
	b.nodes = append(b.nodes, s)
	return b
}

// AddDestination appends the destination registered for the view-model kind vm.
func (b *Builder) AddDestination(vm *Kind, configure ...ConfigureSegment) *Builder {
	if b.err != nil {
		return b
	}
	name, err := b.registry.LookupKeyByViewModel(vm)
	if err != nil {
		b.err = fmt.Errorf("add destination: %w", err)
		return b
	}
	return b.AddSegment(name, configure...)
}

// AddWrapperSegment appends the most recently registered destination whose view is
// of the given kind.
func (b *Builder) AddWrapperSegment(kind *Kind, configure ...ConfigureSegment) *Builder {
	if b.err != nil {
		return b
	}
	name, err := lastWrapper(b.registry, kind)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddSegment(name, configure...)
}

// AddNavigationPage appends the most recently registered NavigationPage.
func (b *Builder) AddNavigationPage(configure ...ConfigureSegment) *Builder {
	return b.AddWrapperSegment(KindNavigationPage, configure...)
}

// AddTabbedSegment appends a tab group hosted by the most recently registered TabbedPage.
func (b *Builder) AddTabbedSegment(configure func(*TabGroupBuilder)) *Builder {
	if b.err != nil {
		return b
	}
	name, err := lastWrapper(b.registry, KindTabbedPage)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddTabbedSegmentNamed(name, configure)
}

// AddTabbedSegmentNamed appends a tab group hosted by the named destination.
func (b *Builder) AddTabbedSegmentNamed(host string, configure func(*TabGroupBuilder)) *Builder {
	if b.err != nil {
		return b
	}
	tb := &TabGroupBuilder{registry: b.registry}
	if configure != nil {
		configure(tb)
	}
	group, err := tb.build(host)
	if err != nil {
		b.err = err
		return b
	}
	b.nodes = append(b.nodes, group)
	return b
}

// Err returns the first composition error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Path returns the composed, unresolved path.
func (b *Builder) Path() (Path, error) {
	if b.err != nil {
		return Path{}, b.err
	}
	if len(b.nodes) == 0 {
		return Path{}, ErrEmptyPath
	}
	return NewPath(b.absolute, b.nodes...), nil
}

// Build composes and resolves the path. It has no side effects.
func (b *Builder) Build() (ResolvedPath, error) {
	p, err := b.Path()
	if err != nil {
		return ResolvedPath{}, err
	}
	return Resolve(p, b.registry)
}

// Navigate builds the path and dispatches it.
//
// Composition and resolution errors are returned immediately and nothing is dispatched.
// Failures of the navigation itself are only reported through the callbacks and the
// returned handle, which the caller is free to ignore.
func (b *Builder) Navigate(ctx context.Context, callbacks ...Callback) (*Navigation, error) {
	resolved, err := b.Build()
	if err != nil {
		return nil, err
	}
	if b.dispatcher == nil {
		return nil, ErrNoDispatcher
	}
	return b.dispatcher.Dispatch(ctx, resolved, callbacks...), nil
}

func lastWrapper(registry RegistryProvider, kind *Kind) (string, error) {
	if kind == nil {
		return "", fmt.Errorf("wrapper lookup: %w", ErrNilKind)
	}
	regs := registry.ViewsOfKind(kind)
	if len(regs) == 0 {
		return "", &NoWrapperRegisteredError{Kind: kind.Name()}
	}
	return regs[len(regs)-1].Name(), nil
}
