// Package slots provides an index addressed store that grows on write.
package slots

import (
	"reflect"

	"github.com/longkeyy/go-rowset/common/sqlerr"
)

// DefaultCapacity is the capacity of a new or cleared store.
const DefaultCapacity = 10

// Store is a positional value buffer. Writing past the physical capacity
// grows the buffer; reading is limited to the logical size, which is the
// highest index written plus one.
type Store[T any] struct {
	buf  []T
	size int
}

// New creates an empty store. A non-positive capacity means DefaultCapacity.
func New[T any](capacity int) *Store[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store[T]{buf: make([]T, capacity)}
}

func NewDefault[T any]() *Store[T] {
	return New[T](DefaultCapacity)
}

// Set writes value at index, doubling the capacity (or more, when doubling
// is still too small) if index does not fit.
func (s *Store[T]) Set(index int, value T) error {
	if index < 0 {
		return sqlerr.OutOfRange("slot", index, 0, len(s.buf)-1)
	}
	if index >= len(s.buf) {
		s.grow(index + 1)
	}
	s.buf[index] = value
	if index+1 > s.size {
		s.size = index + 1
	}
	return nil
}

func (s *Store[T]) grow(minCapacity int) {
	newCap := len(s.buf) * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	grown := make([]T, newCap)
	copy(grown, s.buf[:s.size])
	s.buf = grown
}

// Get returns the value at index. Slots past the logical size are not
// readable even when physically allocated.
func (s *Store[T]) Get(index int) (T, error) {
	if index < 0 || index >= s.size {
		var zero T
		return zero, sqlerr.OutOfRange("slot", index, 0, s.size-1)
	}
	return s.buf[index], nil
}

// Contains scans the logical contents for value. Two nil values are equal.
func (s *Store[T]) Contains(value T) bool {
	for i := 0; i < s.size; i++ {
		if equal(s.buf[i], value) {
			return true
		}
	}
	return false
}

func equal(a, b interface{}) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return reflect.DeepEqual(a, b)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Clear drops all values and the grown capacity.
func (s *Store[T]) Clear() {
	s.buf = make([]T, DefaultCapacity)
	s.size = 0
}

func (s *Store[T]) Size() int {
	return s.size
}

func (s *Store[T]) Capacity() int {
	return len(s.buf)
}

// Values returns a copy of the logical contents.
func (s *Store[T]) Values() []T {
	out := make([]T, s.size)
	copy(out, s.buf[:s.size])
	return out
}
