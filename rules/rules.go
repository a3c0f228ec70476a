package rules

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownRuleSet is returned by ByName for names with no registered rule set
var ErrUnknownRuleSet = errors.New("unknown rule set")

/*
RuleSet decides cell transitions from a neighbor count alone.

ShouldSpawn reports whether a dead cell comes alive this tick.
ShouldDecay reports whether a living, non-decaying cell starts decaying this tick.
*/
type RuleSet interface {
	ShouldSpawn(neighbors int) bool
	ShouldDecay(neighbors int) bool
}

// Funcs adapts two plain predicates to a RuleSet
type Funcs struct {
	Spawn func(neighbors int) bool
	Decay func(neighbors int) bool
}

// ShouldSpawn calls f.Spawn; a nil predicate never spawns
func (f Funcs) ShouldSpawn(neighbors int) bool {
	return f.Spawn != nil && f.Spawn(neighbors)
}

// ShouldDecay calls f.Decay; a nil predicate never decays
func (f Funcs) ShouldDecay(neighbors int) bool {
	return f.Decay != nil && f.Decay(neighbors)
}

var (
	// Standard spawns on exactly 2 neighbors and decays outside the 2..3 survival band
	Standard RuleSet = Funcs{
		Spawn: func(n int) bool { return n == 2 },
		Decay: func(n int) bool { return n < 2 || n > 3 },
	}

	// Waves inverts survival: cells decay inside the 2..3 band and spawn on more than 1 neighbor.
	// Usually looks like sound waves coming out of the seed.
	Waves RuleSet = Funcs{
		Spawn: func(n int) bool { return n > 1 },
		Decay: func(n int) bool { return n == 2 || n == 3 },
	}

	// Classic uses Conway's birth condition with the same decay band as Standard
	Classic RuleSet = Funcs{
		Spawn: func(n int) bool { return n == 3 },
		Decay: func(n int) bool { return n < 2 || n > 3 },
	}
)

var registry = map[string]RuleSet{
	"standard": Standard,
	"waves":    Waves,
	"classic":  Classic,
}

// ByName returns the built-in rule set registered under name (case-insensitive)
func ByName(name string) (RuleSet, error) {
	rs, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRuleSet, "[ByName] %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return rs, nil
}

// Names lists the registered rule set names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
