package navigation

import "maps"

// ParamUseModalNavigation is the query key that carries the modal flag on the wire.
// It cannot be used as a regular segment parameter.
const ParamUseModalNavigation = "useModalNavigation"

// Segment is one immutable navigation step.
//
// A segment either names its destination directly or refers to a view-model kind
// that the resolver turns into a name.
type Segment struct {
	name      string
	viewModel *Kind
	modal     bool
	params    map[string]string
}

// ConfigureSegment adjusts a segment while it is being built.
type ConfigureSegment func(*SegmentBuilder)

// SegmentBuilder collects the options of a single segment. It does no validation;
// names and parameters are checked when the path is resolved.
type SegmentBuilder struct {
	modal  bool
	params map[string]string
}

// UseModalNavigation sets whether the segment is presented modally.
func (b *SegmentBuilder) UseModalNavigation(modal bool) *SegmentBuilder {
	b.modal = modal
	return b
}

// Modal is shorthand for UseModalNavigation(true).
func (b *SegmentBuilder) Modal() *SegmentBuilder {
	return b.UseModalNavigation(true)
}

// AddParameter sets a query parameter. Later values replace earlier ones.
func (b *SegmentBuilder) AddParameter(key, value string) *SegmentBuilder {
	if b.params == nil {
		b.params = make(map[string]string)
	}
	b.params[key] = value
	return b
}

// AddParameters sets every parameter in params.
func (b *SegmentBuilder) AddParameters(params map[string]string) *SegmentBuilder {
	for k, v := range params {
		b.AddParameter(k, v)
	}
	return b
}

func buildSegment(name string, vm *Kind, configure []ConfigureSegment) Segment {
	b := &SegmentBuilder{}
	for _, fn := range configure {
		if fn != nil {
			fn(b)
		}
	}
	return newSegment(name, vm, b.modal, b.params)
}

func newSegment(name string, vm *Kind, modal bool, params map[string]string) Segment {
	var frozen map[string]string
	if len(params) > 0 {
		frozen = maps.Clone(params)
	}
	return Segment{name: name, viewModel: vm, modal: modal, params: frozen}
}

// NewSegment builds a segment that names its destination.
func NewSegment(name string, configure ...ConfigureSegment) Segment {
	return buildSegment(name, nil, configure)
}

// SegmentFor builds a segment that refers to a view-model kind. The name is filled in
// by Resolve.
func SegmentFor(vm *Kind, configure ...ConfigureSegment) Segment {
	return buildSegment("", vm, configure)
}

// Name returns the destination name; empty for unresolved view-model segments.
func (s Segment) Name() string {
	return s.name
}

// ViewModel returns the view-model reference of an unresolved segment.
func (s Segment) ViewModel() *Kind {
	return s.viewModel
}

// IsModal reports whether the segment is presented modally.
func (s Segment) IsModal() bool {
	return s.modal
}

// Parameters returns a copy of the segment parameters.
func (s Segment) Parameters() map[string]string {
	return maps.Clone(s.params)
}

// Parameter returns a single parameter value.
func (s Segment) Parameter(key string) (string, bool) {
	v, ok := s.params[key]
	return v, ok
}

func (s Segment) withName(name string) Segment {
	s.name = name
	s.viewModel = nil
	return s
}
