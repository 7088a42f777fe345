package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/reeflective/dialect/internal/cache"
	cerrors "github.com/reeflective/dialect/internal/errors"
	"github.com/reeflective/dialect/internal/logging"
)

// parseKey is the per-command cache key: the input text plus a length, both
// as the caller passes them (Manager.Parse passes the raw input string and
// its byte length) (spec.md §4.4 "parse cache").
type parseKey struct {
	text string
	n    int
}

// commandEntry is everything the registry keeps about one registered
// command: the command itself, its bounded parse cache, and its bounded
// completion-history ring.
type commandEntry struct {
	command     *Command
	cache       *cache.Cache[parseKey, *Arparma]
	completions *cache.Ring[string]
}

// CommandManager is the namespace-scoped command registry (spec.md §3
// "CommandManager", §4.4). It assigns a stable instance ID on construction
// (mirroring how a long-running process distinguishes its own manager from
// another one in the same binary, e.g. in tests), detects duplicate
// registration by fingerprint, and hands each registered command its own
// bounded LRU parse cache sized from its namespace's config.
type CommandManager struct {
	mu sync.RWMutex

	id  string
	log *logging.Logger

	namespaces map[string]NamespaceConfig
	byID       map[string]*commandEntry
	byFinger   map[string]string // fingerprint -> command ID, dedup within namespace
	byName     map[string][]string
}

// ManagerOption configures a CommandManager at construction time.
type ManagerOption func(*CommandManager)

// WithLogger attaches a logger; the default is logging.Nop().
func WithLogger(l *logging.Logger) ManagerOption {
	return func(m *CommandManager) { m.log = l }
}

// WithNamespaceConfig registers (or overrides) a namespace's defaults.
func WithNamespaceConfig(cfg NamespaceConfig) ManagerOption {
	return func(m *CommandManager) { m.namespaces[cfg.Name] = cfg }
}

// NewCommandManager builds an empty registry.
func NewCommandManager(opts ...ManagerOption) *CommandManager {
	m := &CommandManager{
		id:         uuid.NewString(),
		log:        logging.Nop(),
		namespaces: map[string]NamespaceConfig{"": DefaultNamespaceConfig()},
		byID:       map[string]*commandEntry{},
		byFinger:   map[string]string{},
		byName:     map[string][]string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns this manager's stable instance identifier.
func (m *CommandManager) ID() string { return m.id }

// Logger returns the logger attached at construction, or a Nop logger.
func (m *CommandManager) Logger() *logging.Logger { return m.log }

// namespaceConfig returns ns's config, or the global default if ns is unconfigured.
func (m *CommandManager) namespaceConfig(ns string) NamespaceConfig {
	if cfg, ok := m.namespaces[ns]; ok {
		return cfg
	}
	return m.namespaces[""]
}

// Register fingerprints c, applies its namespace's defaults, and adds it to
// the registry, rejecting an exact header+name collision within the same
// namespace (spec.md §4.4 "Registration").
func (m *CommandManager) Register(c *Command) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := m.namespaceConfig(c.Namespace)
	cfg.ApplyTo(c)

	key := c.Namespace + "\x00" + c.Fingerprint()
	if existingID, dup := m.byFinger[key]; dup {
		return "", cerrors.Newf(cerrors.DuplicateCommand, "command %q already registered as %s in namespace %q", c.CommandName, existingID, c.Namespace)
	}

	c.ID = uuid.NewString()
	m.byFinger[key] = c.ID
	m.byID[c.ID] = &commandEntry{
		command:     c,
		cache:       cache.New[parseKey, *Arparma](cfg.CacheSize),
		completions: cache.NewRing[string](cfg.CompletionRingSize),
	}
	m.byName[c.CommandName] = append(m.byName[c.CommandName], c.ID)

	m.log.Debugf("registered command %q as %s in namespace %q", c.CommandName, c.ID, c.Namespace)
	return c.ID, nil
}

// Unregister removes a command by ID, freeing its cache.
func (m *CommandManager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.byID[id]
	if !ok {
		return
	}
	key := entry.command.Namespace + "\x00" + entry.command.Fingerprint()
	delete(m.byFinger, key)
	delete(m.byID, id)

	names := m.byName[entry.command.CommandName]
	for i, n := range names {
		if n == id {
			m.byName[entry.command.CommandName] = append(names[:i], names[i+1:]...)
			break
		}
	}
}

// Get returns the command registered under id.
func (m *CommandManager) Get(id string) (*Command, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return entry.command, true
}

// ByName returns every command registered under name, across namespaces.
func (m *CommandManager) ByName(name string) []*Command {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Command
	for _, id := range m.byName[name] {
		out = append(out, m.byID[id].command)
	}
	return out
}

// All returns every registered command.
func (m *CommandManager) All() []*Command {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Command, 0, len(m.byID))
	for _, entry := range m.byID {
		out = append(out, entry.command)
	}
	return out
}

// CachedParse looks up a previously-cached Arparma for this exact
// (command, input) pair (same collection length and text replays the cached
// result without re-running the analyser). The returned value is always a
// fresh Clone of the cached entry, never the cached pointer itself, so a
// caller mutating its result or re-running Execute's behaviors can't corrupt
// what every other caller sees on their own cache hit.
func (m *CommandManager) CachedParse(id string, text string, n int) (*Arparma, bool) {
	m.mu.RLock()
	entry, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	cached, hit := entry.cache.Get(parseKey{text: text, n: n})
	if !hit {
		return nil, false
	}
	return cached.Clone(), true
}

// StoreParse caches result for (command, input).
func (m *CommandManager) StoreParse(id string, text string, n int, result *Arparma) {
	m.mu.RLock()
	entry, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return
	}
	entry.cache.Add(parseKey{text: text, n: n}, result)
}

// CacheLen reports how many cached parses are held for a command, 0 if the
// command is unknown or its cache is disabled.
func (m *CommandManager) CacheLen(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.byID[id]
	if !ok {
		return 0
	}
	return entry.cache.Len()
}

// RecordCompletion appends partial to id's completion-history ring. A blank
// partial or an unknown id is a no-op.
func (m *CommandManager) RecordCompletion(id string, partial string) {
	if partial == "" {
		return
	}
	m.mu.RLock()
	entry, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return
	}
	entry.completions.Add(partial)
}

// RecentCompletions returns id's recorded partial-completion inputs, oldest
// first, bounded by its namespace's CompletionRingSize.
func (m *CommandManager) RecentCompletions(id string) []string {
	m.mu.RLock()
	entry, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return entry.completions.Items()
}

// PurgeCache clears the parse cache for a single command.
func (m *CommandManager) PurgeCache(id string) {
	m.mu.RLock()
	entry, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return
	}
	entry.cache.Purge()
}
