// Package simpleenum provides enum-like registries whose constants are
// registered at run time rather than declared as a closed set.
//
// A registry is filled during package initialisation and then frozen.
// After Freeze it is read-only and safe for concurrent use.
package simpleenum

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	// ErrDuplicateName is returned when a name is already registered.
	ErrDuplicateName = errors.New("simpleenum: duplicate name")

	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("simpleenum: registry is frozen")

	// ErrOrdinalMismatch is returned when a value's ordinal is not the
	// next free index.
	ErrOrdinalMismatch = errors.New("simpleenum: ordinal mismatch")

	// ErrNilValue is returned when registering a nil value.
	ErrNilValue = errors.New("simpleenum: nil value")
)

// Enum is implemented by every registered constant.
type Enum interface {
	Name() string
	Ordinal() int
}

// Base carries the name and ordinal of a constant. Embed it to satisfy
// Enum.
type Base struct {
	name    string
	ordinal int
}

// NewBase returns a Base with the given name and ordinal.
func NewBase(name string, ordinal int) Base {
	return Base{name: name, ordinal: ordinal}
}

// Name returns the constant's upper-case name.
func (b Base) Name() string { return b.name }

// Ordinal returns the registration index.
func (b Base) Ordinal() int { return b.ordinal }

// String returns the name.
func (b Base) String() string { return b.name }

// Registry holds the constants of one enum kind in ordinal order.
type Registry[T Enum] struct {
	kind string

	mu     sync.RWMutex
	values []T
	byName map[string]T
	frozen bool
}

// New creates an empty registry. kind names the enum in errors.
func New[T Enum](kind string) *Registry[T] {
	return &Registry[T]{
		kind:   kind,
		byName: make(map[string]T),
	}
}

// Kind returns the enum kind name.
func (r *Registry[T]) Kind() string { return r.kind }

// Register appends v. Its ordinal must equal the current length and its
// name must be unused (case-insensitive).
func (r *Registry[T]) Register(v T) error {
	if isNil(v) {
		return fmt.Errorf("%s: %w", r.kind, ErrNilValue)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%s %s: %w", r.kind, v.Name(), ErrFrozen)
	}
	key := strings.ToUpper(v.Name())
	if _, ok := r.byName[key]; ok {
		return fmt.Errorf("%s %s: %w", r.kind, v.Name(), ErrDuplicateName)
	}
	if v.Ordinal() != len(r.values) {
		return fmt.Errorf("%s %s: ordinal %d, want %d: %w",
			r.kind, v.Name(), v.Ordinal(), len(r.values), ErrOrdinalMismatch)
	}
	r.values = append(r.values, v)
	r.byName[key] = v
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level initialisation.
func (r *Registry[T]) MustRegister(v T) T {
	if err := r.Register(v); err != nil {
		panic(err)
	}
	return v
}

// Next returns the ordinal the next registered value must carry.
func (r *Registry[T]) Next() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// ByName looks a constant up by name, ignoring case.
func (r *Registry[T]) ByName(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byName[strings.ToUpper(name)]
	return v, ok
}

// ByOrdinal returns the constant registered at index i.
func (r *Registry[T]) ByOrdinal(i int) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.values) {
		var zero T
		return zero, false
	}
	return r.values[i], true
}

// Values returns a copy of all constants in ordinal order.
func (r *Registry[T]) Values() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of registered constants.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Freeze rejects further registration.
func (r *Registry[T]) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (r *Registry[T]) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

func isNil[T any](v T) bool {
	var e any = v
	if e == nil {
		return true
	}
	rv := reflect.ValueOf(e)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
