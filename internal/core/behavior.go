package core

import (
	"sync"

	cerrors "github.com/reeflective/dialect/internal/errors"
)

// Behavior is a post-analysis operation over an Arparma, ordered by
// declared dependencies (spec.md GLOSSARY "Behavior", §4.7 "execute").
//
// Operate may return an error built with errors.New(errors.BehaveCancelled,
// ...) to skip silently, or errors.New(errors.OutBoundsBehave, ...) to mark
// the whole result failed; any other error aborts Execute immediately.
type Behavior interface {
	// Requires lists behaviors that must run (and have their own
	// dependencies flattened) before this one.
	Requires() []Behavior
	Operate(a *Arparma) error
}

// BehaveCancel is a convenience for a Behavior to skip itself.
func BehaveCancel() error {
	return cerrors.New(cerrors.BehaveCancelled, "behavior cancelled")
}

// BehaveFail is a convenience for a Behavior to fail the whole result.
func BehaveFail(reason string) error {
	return cerrors.New(cerrors.OutBoundsBehave, reason)
}

var (
	requirementMemo   = map[Behavior][]Behavior{}
	requirementMemoMu sync.Mutex
)

// requirementHandler flattens a behavior's Requires() chain into execution
// order (dependencies first, the behavior itself last), memoized so a
// shared dependency is not re-flattened on every Execute call (grounded on
// arclet.alconna's components/behavior.py requirement_handler, which uses
// functools.lru_cache for the same reason).
func requirementHandler(b Behavior) []Behavior {
	requirementMemoMu.Lock()
	defer requirementMemoMu.Unlock()
	return requirementHandlerLocked(b, map[Behavior]bool{})
}

func requirementHandlerLocked(b Behavior, visiting map[Behavior]bool) []Behavior {
	if cached, ok := requirementMemo[b]; ok {
		return cached
	}
	if visiting[b] {
		return nil // cyclic dependency: break silently rather than infinite-loop
	}
	visiting[b] = true

	var result []Behavior
	for _, dep := range b.Requires() {
		result = append(result, requirementHandlerLocked(dep, visiting)...)
	}
	result = append(result, b)

	requirementMemo[b] = result
	return result
}
