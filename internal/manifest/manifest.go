// Package manifest loads destination registrations from a YAML file and
// applies them to a navigation registry at bootstrap.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/log"
)

// ErrNoDestinations is returned for a manifest that declares nothing to register.
var ErrNoDestinations = errors.New("manifest declares no destinations")

// File is the root structure of a waypoint manifest.
type File struct {
	Kinds        []KindDef        `yaml:"kinds"`
	Destinations []DestinationDef `yaml:"destinations"`
}

// KindDef declares a custom view kind, e.g. an application navigation page.
type KindDef struct {
	Name string `yaml:"name"`
	Base string `yaml:"base"` // built-in or declared kind, default Page
}

// DestinationDef declares one registration.
type DestinationDef struct {
	Name      string `yaml:"name"`       // defaults to View
	View      string `yaml:"view"`       // required
	Base      string `yaml:"base"`       // base kind of an undeclared view, default Page
	ViewModel string `yaml:"view_model"` // optional
}

// Manifest is a parsed manifest with its kinds interned by name.
type Manifest struct {
	file  File
	kinds map[string]*navigation.Kind
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: manifest path comes from config
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadFS reads and parses the manifest at name within fsys.
func LoadFS(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Parse decodes manifest YAML and builds its kinds.
func Parse(data []byte) (*Manifest, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(file.Destinations) == 0 {
		return nil, ErrNoDestinations
	}

	m := &Manifest{file: file, kinds: navigation.BuiltinKinds()}
	if err := m.buildKinds(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) buildKinds() error {
	for i, def := range m.file.Kinds {
		if def.Name == "" {
			return fmt.Errorf("kind %d: name is required", i)
		}
		if _, exists := m.kinds[def.Name]; exists {
			return fmt.Errorf("kind %q: declared twice or shadows a built-in kind", def.Name)
		}
		base, err := m.baseKind(def.Base)
		if err != nil {
			return fmt.Errorf("kind %q: %w", def.Name, err)
		}
		m.kinds[def.Name] = navigation.NewViewKind(def.Name, base)
	}

	declaredBase := make(map[string]string)
	for i, def := range m.file.Destinations {
		if def.View == "" {
			return fmt.Errorf("destination %d: view is required", i)
		}
		if prev, seen := declaredBase[def.View]; seen && prev != def.Base {
			return fmt.Errorf("destination %d: view %q declared with bases %q and %q", i, def.View, prev, def.Base)
		}
		declaredBase[def.View] = def.Base
		if _, exists := m.kinds[def.View]; exists {
			continue
		}
		base, err := m.baseKind(def.Base)
		if err != nil {
			return fmt.Errorf("destination %d (%s): %w", i, def.View, err)
		}
		m.kinds[def.View] = navigation.NewViewKind(def.View, base)
	}

	for _, def := range m.file.Destinations {
		if def.ViewModel == "" {
			continue
		}
		if _, exists := m.kinds[def.ViewModel]; !exists {
			m.kinds[def.ViewModel] = navigation.NewViewModelKind(def.ViewModel)
		}
	}
	return nil
}

func (m *Manifest) baseKind(name string) (*navigation.Kind, error) {
	if name == "" {
		return navigation.KindPage, nil
	}
	k, ok := m.kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown base kind %q", name)
	}
	return k, nil
}

// Kind returns the kind named name: a built-in, a declared kind, a view or a view model.
func (m *Manifest) Kind(name string) (*navigation.Kind, bool) {
	k, ok := m.kinds[name]
	return k, ok
}

// Destinations returns the declared destinations in file order.
func (m *Manifest) Destinations() []DestinationDef {
	out := make([]DestinationDef, len(m.file.Destinations))
	copy(out, m.file.Destinations)
	return out
}

// Register registers every destination in file order.
func (m *Manifest) Register(reg *navigation.Registry) error {
	for i, def := range m.file.Destinations {
		var vm *navigation.Kind
		if def.ViewModel != "" {
			vm = m.kinds[def.ViewModel]
		}
		if err := reg.Register(m.kinds[def.View], vm, def.Name); err != nil {
			return fmt.Errorf("destination %d (%s): %w", i, def.View, err)
		}
		log.Debug(log.CatRegistry, "registered destination", "name", def.Name, "view", def.View, "view_model", def.ViewModel)
	}
	return nil
}

// Apply bootstraps reg with the manifest's destinations and seals it.
func (m *Manifest) Apply(reg *navigation.Registry) error {
	err := reg.Bootstrap(m.Register)
	if err != nil {
		log.ErrorErr(log.CatRegistry, "bootstrap failed", err)
		return err
	}
	log.Info(log.CatRegistry, "registry bootstrapped", "destinations", reg.Len())
	return nil
}
