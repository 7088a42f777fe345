package dialect

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/reeflective/dialect/internal/analyser"
	"github.com/reeflective/dialect/internal/core"
)

// Manager is the namespace-scoped command registry plus each registered
// command's compiled Analyser and bounded parse cache (spec.md §3
// "CommandManager", §4.4, §4.8 "Parse cache").
type Manager struct {
	registry *core.CommandManager

	mu       sync.RWMutex
	compiled map[string]*Analyser
}

// ManagerOption configures a Manager at construction time.
type ManagerOption = core.ManagerOption

// WithLogger attaches a structured logger to the registry and to every
// command's compiled Analyser.
var WithLogger = core.WithLogger

// WithNamespaceConfig registers a namespace's defaults up front.
var WithNamespaceConfig = core.WithNamespaceConfig

// NewManager builds an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	return &Manager{
		registry: core.NewCommandManager(opts...),
		compiled: map[string]*Analyser{},
	}
}

// ID returns the manager's stable instance identifier.
func (m *Manager) ID() string { return m.registry.ID() }

// Register compiles and registers cmd, returning its assigned ID.
func (m *Manager) Register(cmd *Command) (string, error) {
	id, err := m.registry.Register(cmd)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.compiled[id] = analyser.Compile(cmd, m.registry.Logger())
	m.mu.Unlock()
	return id, nil
}

// Unregister removes a command and its compiled analyser/cache.
func (m *Manager) Unregister(id string) {
	m.registry.Unregister(id)
	m.mu.Lock()
	delete(m.compiled, id)
	m.mu.Unlock()
}

// Get returns a registered command by ID.
func (m *Manager) Get(id string) (*Command, bool) {
	return m.registry.Get(id)
}

// ByName returns every command registered under name, across namespaces.
func (m *Manager) ByName(name string) []*Command {
	return m.registry.ByName(name)
}

// Parse analyses input against the command registered under id, replaying a
// cached result when one exists for this exact input (spec.md §4.8 "Parse
// cache") and executing behaviors on a fresh successful match.
func (m *Manager) Parse(id string, input string) (*Arparma, error) {
	cmd, ok := m.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("dialect: no command registered as %q", id)
	}

	if cached, hit := m.registry.CachedParse(id, input, len(input)); hit {
		return cached, nil
	}

	m.mu.RLock()
	a := m.compiled[id]
	m.mu.RUnlock()

	data := core.NewFromString(input, core.Options{KeepCRLF: cmd.Meta.KeepCRLF})
	result := a.Analyse(data)
	if result.Matched {
		_ = result.Execute()
		m.registry.StoreParse(id, input, len(input), result.Clone())
		return result, nil
	}
	if partial, ok := result.OtherArgs["completion.partial"].(string); ok {
		m.registry.RecordCompletion(id, partial)
	}
	return result, nil
}

// RecentCompletions returns the last partial completion inputs recorded for
// id, oldest first, bounded by its namespace's CompletionRingSize.
func (m *Manager) RecentCompletions(id string) []string {
	return m.registry.RecentCompletions(id)
}

// Stats renders a human-readable one-line summary of registry and cache
// occupancy, using github.com/dustin/go-humanize for the counts.
func (m *Manager) Stats() string {
	all := m.registry.All()
	var cached uint64
	for _, cmd := range all {
		cached += uint64(m.registry.CacheLen(cmd.ID))
	}
	return fmt.Sprintf("%s commands registered, %s cached parses",
		humanize.Comma(int64(len(all))), humanize.Comma(int64(cached)))
}
