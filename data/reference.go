package data

import (
	"context"
	"sync"
)

type RefState int

const (
	Unloaded RefState = iota + 1
	Loaded
)

func (s RefState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

type Resolver[T any, ID comparable] func(ctx context.Context, id ID) (T, error)

// Ref is an association to an entity known by its identifier.
// It is either Loaded with the full record, or Unloaded. An unloaded Ref with a
// resolver is managed and reads the record on Resolve; one without a resolver is
// a placeholder and never reads.
type Ref[T any, ID comparable] struct {
	m       sync.Mutex
	id      ID
	state   RefState
	value   T
	resolve Resolver[T, ID]
}

func LoadedRef[T any, ID comparable](id ID, v T) *Ref[T, ID] {
	return &Ref[T, ID]{
		id:    id,
		state: Loaded,
		value: v,
	}
}

func ManagedRef[T any, ID comparable](id ID, resolve Resolver[T, ID]) *Ref[T, ID] {
	if resolve == nil {
		panic("ManagedRef: resolver is nil")
	}
	return &Ref[T, ID]{
		id:      id,
		state:   Unloaded,
		value:   stubOf[T](id),
		resolve: resolve,
	}
}

// PlaceholderRef returns a detached reference whose value is a zero T carrying only id.
func PlaceholderRef[T any, ID comparable](id ID) *Ref[T, ID] {
	return &Ref[T, ID]{
		id:    id,
		state: Unloaded,
		value: stubOf[T](id),
	}
}

func stubOf[T any, ID comparable](id ID) T {
	var stub T
	setID[T, ID](&stub, id)
	return stub
}

func (r *Ref[T, ID]) ID() ID {
	return r.id
}

func (r *Ref[T, ID]) State() RefState {
	r.m.Lock()
	defer r.m.Unlock()
	return r.state
}

func (r *Ref[T, ID]) IsManaged() bool {
	return r.resolve != nil
}

// Peek returns the current value without reading storage.
func (r *Ref[T, ID]) Peek() (T, bool) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.value, r.state == Loaded
}

// Resolve loads a managed reference once. Failed loads are not cached.
// A placeholder resolves to its stub.
func (r *Ref[T, ID]) Resolve(ctx context.Context) (T, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.state == Loaded || r.resolve == nil {
		return r.value, nil
	}
	v, err := r.resolve(ctx, r.id)
	if err != nil {
		return r.value, err
	}
	r.value = v
	r.state = Loaded
	return r.value, nil
}
