package navigation

import "context"

// RegistryProvider defines read-only access to the destination registry.
// Builders and the resolver depend on this interface so tests can substitute fakes.
type RegistryProvider interface {
	// Get returns the registration for name.
	// Returns an UnregisteredDestinationError if the name is unknown.
	Get(name string) (*Registration, error)

	// Has reports whether name is registered.
	Has(name string) bool

	// LookupKeyByViewModel returns the most recently registered name using vm.
	LookupKeyByViewModel(vm *Kind) (string, error)

	// ViewsOfKind returns registrations whose view kind is (or derives from) kind,
	// in registration order.
	ViewsOfKind(kind *Kind) []*Registration

	// List returns all registrations in registration order.
	List() []*Registration
}

// Dispatcher hands a resolved path to whatever performs the navigation.
// Dispatch must not block on the navigation itself; the outcome is reported
// through callbacks and the returned handle.
type Dispatcher interface {
	Dispatch(ctx context.Context, path ResolvedPath, callbacks ...Callback) *Navigation
}

// Compile-time check that Registry implements RegistryProvider.
var _ RegistryProvider = (*Registry)(nil)
