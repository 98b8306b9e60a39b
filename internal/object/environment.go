package object

import (
	"log/slog"
	"sort"
	"sync"
)

// Environment is the evaluator's heap: names to values, last write wins. It
// lives as long as the REPL session that owns it.
type Environment struct {
	Bindings map[string]*Binding

	mu sync.RWMutex
}

type Binding struct {
	Value Object
	Count int // number of times the name has been (re)bound
}

func NewEnvironment() *Environment {
	return &Environment{
		Bindings: make(map[string]*Binding),
	}
}

func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	binding, ok := e.Bindings[name]
	e.mu.RUnlock()

	if !ok {
		return nil, false
	}
	slog.Debug("Found binding",
		slog.String("name", name),
		slog.String("value", binding.Value.Inspect()))
	return binding.Value, true
}

// Define binds name to val, replacing any earlier binding, and returns val.
func (e *Environment) Define(name string, val Object) Object {
	e.mu.Lock()
	defer e.mu.Unlock()

	binding, exists := e.Bindings[name]
	if !exists {
		binding = &Binding{}
		e.Bindings[name] = binding
	}
	binding.Value = val
	binding.Count++
	return val
}

// Names lists the bound names in sorted order.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.Bindings))
	for name := range e.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Bindings)
}
