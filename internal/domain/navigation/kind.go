package navigation

import (
	"reflect"
	"strings"
	"sync"
)

// Kind is an opaque descriptor for a constructible view or view-model type.
//
// Kinds are compared by identity. The typed constructors intern one Kind per Go type,
// so ViewKindOf[LoginPage]() always returns the same pointer.
type Kind struct {
	name   string
	base   *Kind
	visual bool
}

// Built-in visual kinds. Wrapper lookups (AddNavigationPage, AddTabbedSegment) match
// registrations whose view kind is, or derives from, one of these.
var (
	KindVisualElement  = &Kind{name: "VisualElement", visual: true}
	KindView           = &Kind{name: "View", base: KindVisualElement, visual: true}
	KindPage           = &Kind{name: "Page", base: KindVisualElement, visual: true}
	KindNavigationPage = &Kind{name: "NavigationPage", base: KindPage, visual: true}
	KindTabbedPage     = &Kind{name: "TabbedPage", base: KindPage, visual: true}
)

// BuiltinKinds returns the built-in visual kinds keyed by name.
func BuiltinKinds() map[string]*Kind {
	return map[string]*Kind{
		KindVisualElement.name:  KindVisualElement,
		KindView.name:           KindView,
		KindPage.name:           KindPage,
		KindNavigationPage.name: KindNavigationPage,
		KindTabbedPage.name:     KindTabbedPage,
	}
}

// NewViewKind creates a visual kind. A nil base defaults to KindPage.
func NewViewKind(name string, base *Kind) *Kind {
	if base == nil {
		base = KindPage
	}
	return &Kind{name: name, base: base, visual: true}
}

// NewViewModelKind creates a non-visual kind.
func NewViewModelKind(name string) *Kind {
	return &Kind{name: name}
}

var typeKinds sync.Map // reflect.Type -> *Kind

// ViewKindOf returns the interned view kind for T, named after the type.
// The first call for a type decides its role: if T was first seen as a view model
// the existing non-visual kind is returned, which the registry then rejects.
func ViewKindOf[T any](base *Kind) *Kind {
	t := reflect.TypeFor[T]()
	k, _ := typeKinds.LoadOrStore(t, NewViewKind(typeName(t), base))
	return k.(*Kind)
}

// ViewModelKindOf returns the interned view-model kind for T.
func ViewModelKindOf[T any]() *Kind {
	t := reflect.TypeFor[T]()
	k, _ := typeKinds.LoadOrStore(t, NewViewModelKind(typeName(t)))
	return k.(*Kind)
}

// typeName is the declared name of t without type arguments, so Page[int]
// is named Page. Anonymous types have no name and need an explicit
// registration name.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name, _, _ := strings.Cut(t.Name(), "[")
	return name
}

// Name returns the kind's identifier.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Base returns the kind this kind derives from, or nil.
func (k *Kind) Base() *Kind {
	if k == nil {
		return nil
	}
	return k.base
}

// IsVisual reports whether the kind describes a view.
func (k *Kind) IsVisual() bool {
	return k != nil && k.visual
}

// Is reports whether k is other or derives from it.
func (k *Kind) Is(other *Kind) bool {
	if other == nil {
		return false
	}
	for cur := k; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

func (k *Kind) String() string {
	return k.Name()
}
