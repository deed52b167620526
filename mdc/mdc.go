// Package mdc carries mapped and nested diagnostic context in a
// context.Context.
//
// Go has no thread-local storage, so the diagnostic map travels with the
// request context instead. Every With returns a new context holding a
// copy-on-write map; a Map obtained from FromContext is an immutable
// snapshot and is never affected by later additions.
package mdc

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type ctxKey struct{}

type ndcKey struct{}

// Map is an immutable diagnostic map. It implements xgelf.Context.
type Map struct {
	m map[string]any
}

// Keys returns the keys in sorted order. The slice is owned by the caller.
func (m Map) Keys() []string {
	if len(m.m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Map) Get(key string) (any, bool) {
	v, ok := m.m[key]
	return v, ok
}

func (m Map) Len() int { return len(m.m) }

// Copy returns the entries as a new mutable map.
func (m Map) Copy() map[string]any {
	out := make(map[string]any, len(m.m))
	for k, v := range m.m {
		out[k] = v
	}
	return out
}

func (m Map) String() string {
	keys := m.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m.m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FromContext returns the diagnostic map carried by ctx.
func FromContext(ctx context.Context) Map {
	if ctx == nil {
		return Map{}
	}
	m, _ := ctx.Value(ctxKey{}).(Map)
	return m
}

// With returns a context whose map additionally holds key=val.
func With(ctx context.Context, key string, val any) context.Context {
	return WithMap(ctx, map[string]any{key: val})
}

// WithMap returns a context whose map additionally holds every entry of kv.
func WithMap(ctx context.Context, kv map[string]any) context.Context {
	if len(kv) == 0 {
		return ctx
	}
	cur := FromContext(ctx)
	next := make(map[string]any, len(cur.m)+len(kv))
	for k, v := range cur.m {
		next[k] = v
	}
	for k, v := range kv {
		next[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, Map{m: next})
}

// Without returns a context whose map lacks keys.
func Without(ctx context.Context, keys ...string) context.Context {
	cur := FromContext(ctx)
	if len(keys) == 0 || len(cur.m) == 0 {
		return ctx
	}
	next := make(map[string]any, len(cur.m))
	for k, v := range cur.m {
		next[k] = v
	}
	for _, k := range keys {
		delete(next, k)
	}
	return context.WithValue(ctx, ctxKey{}, Map{m: next})
}

// PushNDC returns a context with msg pushed on the nested diagnostic stack.
func PushNDC(ctx context.Context, msg string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	cur, _ := ctx.Value(ndcKey{}).([]string)
	next := make([]string, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, msg)
	return context.WithValue(ctx, ndcKey{}, next)
}

// NDC renders the nested diagnostic stack, outermost first, joined by
// spaces. It is empty when nothing was pushed.
func NDC(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	stack, _ := ctx.Value(ndcKey{}).([]string)
	return strings.Join(stack, " ")
}

// NDCDepth reports how many entries were pushed.
func NDCDepth(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	stack, _ := ctx.Value(ndcKey{}).([]string)
	return len(stack)
}
