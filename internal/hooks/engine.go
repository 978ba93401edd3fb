package hooks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"taskcore/internal/core"
)

// RuntimeHook is the minimal runtime interface a loaded hook plugin
// implements. The manifest declares which lifecycle points are enabled;
// implementations may support any subset of the four point methods below.
type RuntimeHook interface {
	Manifest() Manifest
}

type beforeRunHook interface {
	BeforeRun(ctx context.Context) error
}

type afterRunHook interface {
	AfterRun(ctx context.Context) error
}

type beforeNodeHook interface {
	BeforeNode(ctx context.Context, name string) error
}

type afterNodeHook interface {
	AfterNode(ctx context.Context, name string) error
}

type hookEntry struct {
	hook   RuntimeHook
	id     string
	points map[string]struct{}
}

// Engine runs registered hook plugins at each lifecycle point.
//
// Safety:
//   - recovers hook panics
//   - logs and records hook errors
//   - never returns hook errors to the scheduling core
//
// Determinism: hooks run in stable order by hook_id at each point.
type Engine struct {
	log core.Logger

	mu   sync.Mutex
	err  []error
	hook []hookEntry
}

var _ core.LifecycleHooks = (*Engine)(nil)

// NewEngine builds an Engine from loaded runtime hook implementations,
// sorted by manifest hook_id.
func NewEngine(runtimeHooks []RuntimeHook, log core.Logger) (*Engine, error) {
	log = loggerOrNop(log)

	entries := make([]hookEntry, 0, len(runtimeHooks))
	for _, h := range runtimeHooks {
		if h == nil {
			continue
		}
		m := h.Manifest()
		if err := ValidateManifest(m); err != nil {
			return nil, err
		}
		points := make(map[string]struct{}, len(m.Points))
		for _, p := range m.Points {
			points[p] = struct{}{}
		}
		entries = append(entries, hookEntry{hook: h, id: m.HookID, points: points})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	for i := 1; i < len(entries); i++ {
		if entries[i].id == entries[i-1].id {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHookID, entries[i].id)
		}
	}

	return &Engine{log: log, hook: entries}, nil
}

// Errors returns a snapshot of hook errors observed so far.
func (e *Engine) Errors() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]error, len(e.err))
	copy(out, e.err)
	return out
}

func (e *Engine) recordError(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.err = append(e.err, err)
	e.mu.Unlock()
}

func (e *Engine) BeforeRun(ctx context.Context) {
	if e == nil {
		return
	}
	for _, ent := range e.hook {
		if _, ok := ent.points["BeforeRun"]; !ok {
			continue
		}
		h, ok := ent.hook.(beforeRunHook)
		if !ok {
			err := fmt.Errorf("hook %s declares BeforeRun but does not implement it", ent.id)
			e.log.Printf("hooks: %v", err)
			e.recordError(err)
			continue
		}
		e.call(ent.id, "BeforeRun", func() error { return h.BeforeRun(ctx) })
	}
}

func (e *Engine) AfterRun(ctx context.Context) {
	if e == nil {
		return
	}
	for _, ent := range e.hook {
		if _, ok := ent.points["AfterRun"]; !ok {
			continue
		}
		h, ok := ent.hook.(afterRunHook)
		if !ok {
			err := fmt.Errorf("hook %s declares AfterRun but does not implement it", ent.id)
			e.log.Printf("hooks: %v", err)
			e.recordError(err)
			continue
		}
		e.call(ent.id, "AfterRun", func() error { return h.AfterRun(ctx) })
	}
}

func (e *Engine) BeforeNode(ctx context.Context, name string) {
	if e == nil {
		return
	}
	for _, ent := range e.hook {
		if _, ok := ent.points["BeforeNode"]; !ok {
			continue
		}
		h, ok := ent.hook.(beforeNodeHook)
		if !ok {
			err := fmt.Errorf("hook %s declares BeforeNode but does not implement it", ent.id)
			e.log.Printf("hooks: %v", err)
			e.recordError(err)
			continue
		}
		e.call(ent.id, "BeforeNode", func() error { return h.BeforeNode(ctx, name) })
	}
}

func (e *Engine) AfterNode(ctx context.Context, name string) {
	if e == nil {
		return
	}
	for _, ent := range e.hook {
		if _, ok := ent.points["AfterNode"]; !ok {
			continue
		}
		h, ok := ent.hook.(afterNodeHook)
		if !ok {
			err := fmt.Errorf("hook %s declares AfterNode but does not implement it", ent.id)
			e.log.Printf("hooks: %v", err)
			e.recordError(err)
			continue
		}
		e.call(ent.id, "AfterNode", func() error { return h.AfterNode(ctx, name) })
	}
}

// call invokes fn, trapping panics and recording any returned error without
// ever propagating either back to the scheduling core.
func (e *Engine) call(hookID, point string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("hook %s point %s panic: %v", hookID, point, r)
			e.log.Printf("hooks: %v", err)
			e.recordError(err)
		}
	}()
	if err := fn(); err != nil {
		err2 := fmt.Errorf("hook %s point %s error: %w", hookID, point, err)
		e.log.Printf("hooks: %v", err2)
		e.recordError(err2)
	}
}
