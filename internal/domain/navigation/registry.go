package navigation

import (
	"fmt"
	"strings"
	"sync"
)

// Registration binds a destination name to the kinds used to construct it.
type Registration struct {
	name      string
	view      *Kind
	viewModel *Kind
}

// Name returns the destination name.
func (r *Registration) Name() string {
	return r.name
}

// View returns the view kind.
func (r *Registration) View() *Kind {
	return r.view
}

// ViewModel returns the view-model kind, or nil when the view has none.
func (r *Registration) ViewModel() *Kind {
	return r.viewModel
}

// Registry holds destination registrations in registration order.
//
// Register is not safe for concurrent use; registrations are expected to happen on one
// goroutine during bootstrap. Once sealed the registry is read-only and every read
// method may be called concurrently without locking.
type Registry struct {
	registrations []*Registration
	sealed        bool

	bootOnce sync.Once
	bootErr  error
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		registrations: make([]*Registration, 0),
	}
}

// Register adds a destination. An empty name defaults to the view kind's name.
// Registering an existing name replaces it and makes it the most recent registration.
func (r *Registry) Register(view, viewModel *Kind, name string) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if view == nil {
		return fmt.Errorf("register view: %w", ErrNilKind)
	}
	if !view.IsVisual() {
		return &MvvmPatternBreakError{Kind: view.Name()}
	}
	if viewModel != nil && (viewModel.IsVisual() || r.isViewKind(viewModel)) {
		return &MvvmPatternBreakError{Kind: viewModel.Name()}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		if view.Name() == "" {
			return fmt.Errorf("%w: unnamed view kind needs an explicit registration name", ErrInvalidName)
		}
		name = view.Name()
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	r.remove(name)
	r.registrations = append(r.registrations, &Registration{
		name:      name,
		view:      view,
		viewModel: viewModel,
	})
	return nil
}

// Bootstrap runs fn once and seals the registry. Later calls do not run their
// function and return the first call's result.
func (r *Registry) Bootstrap(fn func(*Registry) error) error {
	r.bootOnce.Do(func() {
		if fn != nil {
			r.bootErr = fn(r)
		}
		r.sealed = true
	})
	return r.bootErr
}

// Sealed reports whether Bootstrap has run.
func (r *Registry) Sealed() bool {
	return r.sealed
}

func (r *Registry) remove(name string) {
	for i, reg := range r.registrations {
		if reg.name == name {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return
		}
	}
}

func (r *Registry) isViewKind(k *Kind) bool {
	for _, reg := range r.registrations {
		if reg.view == k {
			return true
		}
	}
	return false
}

// LookupKeyByViewModel returns the name of the most recent registration that uses vm.
func (r *Registry) LookupKeyByViewModel(vm *Kind) (string, error) {
	if vm == nil {
		return "", fmt.Errorf("lookup view model: %w", ErrNilKind)
	}
	if vm.IsVisual() || r.isViewKind(vm) {
		return "", &MvvmPatternBreakError{Kind: vm.Name()}
	}
	for i := len(r.registrations) - 1; i >= 0; i-- {
		if r.registrations[i].viewModel == vm {
			return r.registrations[i].name, nil
		}
	}
	return "", &UnregisteredDestinationError{Name: vm.Name(), ViewModel: true}
}

// ViewsOfKind returns, in registration order, every registration whose view kind is
// kind or derives from it.
func (r *Registry) ViewsOfKind(kind *Kind) []*Registration {
	result := make([]*Registration, 0)
	for _, reg := range r.registrations {
		if reg.view.Is(kind) {
			result = append(result, reg)
		}
	}
	return result
}

// Get returns the registration for name.
func (r *Registry) Get(name string) (*Registration, error) {
	for _, reg := range r.registrations {
		if reg.name == name {
			return reg, nil
		}
	}
	return nil, &UnregisteredDestinationError{Name: name}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// List returns all registrations in registration order.
func (r *Registry) List() []*Registration {
	out := make([]*Registration, len(r.registrations))
	copy(out, r.registrations)
	return out
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.registrations)
}
