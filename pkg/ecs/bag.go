package ecs

import "github.com/argus-labs/artemis/pkg/assert"

// defaultBagCapacity is the capacity of a bag created without an explicit capacity.
const defaultBagCapacity = 64

// Bag is an unordered, auto-growing, index-addressable container. Removing an element moves the
// last element into the freed slot, so removal is O(1) and element order is not preserved.
//
// A Bag also works as a sparse array. Set and Get address slots directly, and any slot inside the
// capacity that was never written reads as the zero value of T.
type Bag[T comparable] struct {
	data []T // len(data) is the capacity of the bag
	size int // Number of logical elements
}

// NewBag creates a bag that can hold capacity elements before growing. A non-positive capacity
// uses the default capacity.
func NewBag[T comparable](capacity int) *Bag[T] {
	if capacity <= 0 {
		capacity = defaultBagCapacity
	}
	return &Bag[T]{
		data: make([]T, capacity),
		size: 0,
	}
}

// Add appends v to the end of the bag, growing the capacity when the bag is full.
func (b *Bag[T]) Add(v T) {
	if b.size == len(b.data) {
		b.grow(nextBagCapacity(len(b.data)))
	}
	b.data[b.size] = v
	b.size++
}

// AddAll adds every element of other to this bag.
func (b *Bag[T]) AddAll(other *Bag[T]) {
	for i := range other.size {
		b.Add(other.data[i])
	}
}

// Get returns the element at index i. Indexes outside the capacity return the zero value instead
// of panicking. Use IsIndexWithinBounds or Contains when existence matters.
func (b *Bag[T]) Get(i int) T {
	if i < 0 || i >= len(b.data) {
		var zero T
		return zero
	}
	return b.data[i]
}

// Set stores v at index i. The bag grows to at least twice i when i is beyond the capacity, and the
// size is extended to cover i.
func (b *Bag[T]) Set(i int, v T) {
	assert.That(i >= 0, "bag index must not be negative: %d", i)

	if i >= len(b.data) {
		b.grow(max(i*2, i+1))
	}
	if i >= b.size {
		b.size = i + 1
	}
	b.data[i] = v
}

// RemoveByIndex removes the element at index i by overwriting it with the last element. It returns
// the removed element, or the zero value if i is not below the size.
func (b *Bag[T]) RemoveByIndex(i int) T {
	var zero T
	if i < 0 || i >= b.size {
		return zero
	}
	removed := b.data[i]
	b.size--
	b.data[i] = b.data[b.size]
	b.data[b.size] = zero
	return removed
}

// RemoveLast removes and returns the last element. Returns the zero value if the bag is empty.
func (b *Bag[T]) RemoveLast() T {
	var zero T
	if b.size == 0 {
		return zero
	}
	b.size--
	removed := b.data[b.size]
	b.data[b.size] = zero
	return removed
}

// RemoveElement removes the first occurrence of v. Returns true if the bag contained v.
func (b *Bag[T]) RemoveElement(v T) bool {
	for i := range b.size {
		if b.data[i] == v {
			b.RemoveByIndex(i)
			return true
		}
	}
	return false
}

// RemoveAll removes one occurrence of every element of other from this bag. Returns true if the
// bag changed.
func (b *Bag[T]) RemoveAll(other *Bag[T]) bool {
	modified := false
	for i := range other.size {
		if b.RemoveElement(other.data[i]) {
			modified = true
		}
	}
	return modified
}

// Contains reports whether v is one of the first Size elements.
func (b *Bag[T]) Contains(v T) bool {
	for i := range b.size {
		if b.data[i] == v {
			return true
		}
	}
	return false
}

// IsIndexWithinBounds reports whether the backing storage covers index i. It only checks the
// capacity, so false means the slot is definitely empty while true says nothing about its value.
func (b *Bag[T]) IsIndexWithinBounds(i int) bool {
	return i >= 0 && i < len(b.data)
}

// Clear zeroes every slot and resets the size. The capacity is kept.
func (b *Bag[T]) Clear() {
	clear(b.data)
	b.size = 0
}

// Size returns the number of elements in the bag.
func (b *Bag[T]) Size() int {
	return b.size
}

// Capacity returns the number of elements the bag can hold without growing.
func (b *Bag[T]) Capacity() int {
	return len(b.data)
}

// IsEmpty reports whether the bag has no elements.
func (b *Bag[T]) IsEmpty() bool {
	return b.size == 0
}

// Slice returns a copy of the first Size elements.
func (b *Bag[T]) Slice() []T {
	out := make([]T, b.size)
	copy(out, b.data[:b.size])
	return out
}

func (b *Bag[T]) grow(capacity int) {
	if capacity <= len(b.data) {
		return
	}
	data := make([]T, capacity)
	copy(data, b.data)
	b.data = data
}

// nextBagCapacity returns ceil(capacity*1.5 + 1).
func nextBagCapacity(capacity int) int {
	return (capacity*3+1)/2 + 1
}
