package navigator

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

// Provider presents a resolved path: it instantiates or reuses the views for
// each node in order. It is the boundary to whatever hosts the views.
type Provider interface {
	Present(ctx context.Context, path navigation.ResolvedPath) error
}

// BackPresenter is implemented by providers that undo the last presentation
// themselves when navigating back. Other providers get the previous journal
// entry through Present.
type BackPresenter interface {
	PresentBack(ctx context.Context, to navigation.ResolvedPath) error
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, path navigation.ResolvedPath) error

// Present calls f.
func (f ProviderFunc) Present(ctx context.Context, path navigation.ResolvedPath) error {
	return f(ctx, path)
}

// StackHost is an in-memory Provider that keeps the presented screens as a
// stack of destination names. Relative paths push onto the stack; absolute
// paths replace it. It backs the CLI simulator and tests.
type StackHost struct {
	mu        sync.Mutex
	screens   []string
	undo      [][]string
	presented []string
	failures  map[string]error
}

var (
	_ Provider      = (*StackHost)(nil)
	_ BackPresenter = (*StackHost)(nil)
)

// NewStackHost creates an empty host.
func NewStackHost() *StackHost {
	return &StackHost{failures: make(map[string]error)}
}

// FailOn makes every presentation that contains the destination name fail with err.
// A nil err clears the failure.
func (h *StackHost) FailOn(name string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		delete(h.failures, name)
		return
	}
	h.failures[name] = err
}

// Present applies the nodes of path in order.
func (h *StackHost) Present(_ context.Context, path navigation.ResolvedPath) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := destinations(path.Path())
	for _, name := range names {
		if err := h.failures[name]; err != nil {
			return fmt.Errorf("present %s: %w", name, err)
		}
	}

	h.undo = append(h.undo, slices.Clone(h.screens))
	if path.Path().Absolute() {
		h.screens = nil
	}
	for _, node := range path.Path().Nodes() {
		switch n := node.(type) {
		case navigation.Segment:
			h.screens = append(h.screens, n.Name())
		case navigation.TabGroup:
			screen := n.Host().Name()
			if n.Selected() != "" {
				screen += "@" + n.Selected()
			}
			h.screens = append(h.screens, screen)
		}
	}
	h.presented = append(h.presented, path.URI())
	return nil
}

// PresentBack restores the screens as they were before the last presentation.
func (h *StackHost) PresentBack(_ context.Context, to navigation.ResolvedPath) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return fmt.Errorf("present back to %s: nothing to undo", to.URI())
	}
	h.screens = h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.presented = append(h.presented, "<"+to.URI())
	return nil
}

// Screens returns the current screen stack, bottom first.
func (h *StackHost) Screens() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.screens)
}

// Presented returns the URIs presented so far, in order.
func (h *StackHost) Presented() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.presented)
}

// destinations lists every destination name path refers to.
func destinations(p navigation.Path) []string {
	var names []string
	for _, node := range p.Nodes() {
		switch n := node.(type) {
		case navigation.Segment:
			names = append(names, n.Name())
		case navigation.TabGroup:
			names = append(names, n.Host().Name())
			for _, tab := range n.Tabs() {
				names = append(names, tab.Name())
			}
		}
	}
	return names
}
