package vidgrab

import (
	"math"
	"sort"

	"github.com/vidgrab/vidgrab/generic"
)

var (
	PriorityHighest int16 = math.MinInt16
	PriorityDefault int16 = 0
	PriorityLowest  int16 = math.MaxInt16
)

// A StrategyFactory builds a fresh Strategy instance. Chains are built from
// factories so that no strategy state can leak between independent grab
// invocations.
type StrategyFactory = func() Strategy

type strategyEntry struct {
	name     string
	priority int16
	factory  StrategyFactory
}

// A StrategyRegistry is an ordered collection of strategy factories. Lower
// priority means attempted earlier; registration order breaks ties.
type StrategyRegistry struct {
	entries []*strategyEntry
	byName  map[string]*strategyEntry
}

// Add registers a named strategy factory. The name must be non-empty and
// unique within the registry.
func (r *StrategyRegistry) Add(name string, priority int16, factory StrategyFactory) error {
	if r.byName == nil {
		r.byName = make(map[string]*strategyEntry)
	}
	if name == "" || factory == nil {
		return ErrInvalidStrategy
	}
	if _, ok := r.byName[name]; ok {
		return ErrDuplicateStrategy
	}
	entry := &strategyEntry{name: name, priority: priority, factory: factory}
	r.byName[name] = entry
	r.entries = append(r.entries, entry)
	r.sortByPriority()
	return nil
}

// MustAdd wraps Add but panics if there is an error.
func (r *StrategyRegistry) MustAdd(name string, priority int16, factory StrategyFactory) {
	generic.Unwrap_(r.Add(name, priority, factory))
}

// List returns the names of registered strategies in priority order.
func (r *StrategyRegistry) List() []string {
	names := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		names = append(names, entry.name)
	}
	return names
}

// NewChain instantiates every registered strategy in priority order. Each
// call produces fresh instances.
func (r *StrategyRegistry) NewChain() []Strategy {
	chain := make([]Strategy, 0, len(r.entries))
	for _, entry := range r.entries {
		chain = append(chain, entry.factory())
	}
	return chain
}

func (r *StrategyRegistry) sortByPriority() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority < r.entries[j].priority
	})
}

// DefaultStrategyRegistry is populated by the strategies package's init;
// blank-import it to get the standard chain.
var DefaultStrategyRegistry StrategyRegistry
