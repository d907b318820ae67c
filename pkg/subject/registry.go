package subject

import (
	"sort"

	"github.com/pkg/errors"
)

// Constructor builds a fresh, empty Subject instance.
type Constructor func() Subject

// registry maps the corpus module names to their constructors. The names come
// from the generating model of each implementation.
var registry = map[string]Constructor{
	"chatgpt": NewChatGPT,
	"claude":  NewClaude,
	"gemini":  NewGemini,
}

// New constructs a fresh Subject for the given module name.
func New(module string) (Subject, error) {
	constructor, ok := registry[module]
	if !ok {
		return nil, errors.Errorf("unknown subject module %q (available: %v)", module, Modules())
	}

	return constructor(), nil
}

// Modules returns the registered module names in a stable order.
func Modules() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
