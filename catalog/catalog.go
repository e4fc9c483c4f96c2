// Package catalog exposes the consumer-side contract of the host
// application's extracted action catalog: a load-once-then-query table of
// bindable actions and their activation-mode parameters.
package catalog

import (
	"keydeck/activation"
)

// Action is one named, bindable function exposed by the host application.
// Immutable once loaded.
type Action struct {
	Name     string
	Group    string
	Keyboard string
	Mouse    string
	Mode     activation.Mode
}

// Catalog is the query contract the dispatch layer consumes.
type Catalog interface {
	IsLoaded() bool
	// Lookup resolves an action by name, case-insensitively.
	Lookup(name string) (Action, bool)
	All() []Action
	// ActivationModes returns per-mode metadata overrides keyed by mode name.
	ActivationModes() map[string]activation.Metadata
}

// Fake is an in-memory catalog for tests and dry runs.
type Fake struct {
	Loaded  bool
	Actions []Action
	Modes   map[string]activation.Metadata
}

func (f *Fake) IsLoaded() bool { return f.Loaded }

func (f *Fake) Lookup(name string) (Action, bool) {
	for _, a := range f.Actions {
		if equalFold(a.Name, name) {
			return a, true
		}
	}
	return Action{}, false
}

func (f *Fake) All() []Action { return f.Actions }

func (f *Fake) ActivationModes() map[string]activation.Metadata { return f.Modes }
