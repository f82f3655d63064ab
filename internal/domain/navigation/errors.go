package navigation

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match these with errors.Is.
var (
	ErrMvvmPatternBreak        = errors.New("view kind used where a view model was expected")
	ErrNoWrapperRegistered     = errors.New("no wrapper destination registered")
	ErrUnregisteredDestination = errors.New("destination not registered")
	ErrEmptyJournal            = errors.New("navigation journal has no entry in that direction")
	ErrExecution               = errors.New("navigation failed")

	ErrRegistrySealed     = errors.New("registry is sealed after bootstrap")
	ErrNilKind            = errors.New("kind cannot be nil")
	ErrInvalidName        = errors.New("invalid destination name")
	ErrEmptyPath          = errors.New("navigation path has no segments")
	ErrAbsoluteInTabGroup = errors.New("absolute navigation is not allowed inside a tab group")
	ErrReservedParameter  = errors.New("parameter key is reserved")
	ErrMalformedURI       = errors.New("malformed navigation uri")
	ErrNoDispatcher       = errors.New("builder has no dispatcher")
)

// MvvmPatternBreakError is returned when a view kind is supplied where a view-model
// kind was expected, or a view-model kind aliases a registered view.
type MvvmPatternBreakError struct {
	Kind string
}

func (e *MvvmPatternBreakError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMvvmPatternBreak, e.Kind)
}

func (e *MvvmPatternBreakError) Is(target error) bool {
	return target == ErrMvvmPatternBreak
}

// NoWrapperRegisteredError names the wrapper kind that had no registration.
type NoWrapperRegisteredError struct {
	Kind string
}

func (e *NoWrapperRegisteredError) Error() string {
	return fmt.Sprintf("%s: no %s is registered", ErrNoWrapperRegistered, e.Kind)
}

func (e *NoWrapperRegisteredError) Is(target error) bool {
	return target == ErrNoWrapperRegistered
}

// UnregisteredDestinationError names a destination, or a view model, that the
// registry does not know.
type UnregisteredDestinationError struct {
	Name      string
	ViewModel bool
}

func (e *UnregisteredDestinationError) Error() string {
	if e.ViewModel {
		return fmt.Sprintf("%s: no destination uses view model %q", ErrUnregisteredDestination, e.Name)
	}
	return fmt.Sprintf("%s: %q", ErrUnregisteredDestination, e.Name)
}

func (e *UnregisteredDestinationError) Is(target error) bool {
	return target == ErrUnregisteredDestination
}

// EmptyJournalError is returned when the journal cannot move in the requested direction.
type EmptyJournalError struct {
	Direction string // "back" or "forward"
	Len       int
}

func (e *EmptyJournalError) Error() string {
	return fmt.Sprintf("%s: cannot go %s (entries=%d)", ErrEmptyJournal, e.Direction, e.Len)
}

func (e *EmptyJournalError) Is(target error) bool {
	return target == ErrEmptyJournal
}

// ExecutionError wraps a failure reported while presenting a resolved path.
type ExecutionError struct {
	NavigationID string
	URI          string
	Err          error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExecution, e.URI, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}
