// Copyright 2025 go-scan Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package buf

import (
	"fmt"
	"unsafe"

	"github.com/ajroetker/go-highway/hwy"
)

const (
	arenaPages = 10
	pageSize   = 4096
	// ArenaBytes is the default capacity, in bytes, of each arena slab.
	ArenaBytes = arenaPages * pageSize
)

// CapacityError reports a request that exceeds an arena's fixed capacity.
type CapacityError struct {
	Capacity int // capacity in elements
	N        int // requested length in elements
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("buf: internal buffer capacity %d smaller than requested length %d",
		e.Capacity, e.N)
}

// Arena is a bounded, reusable scratch region holding the two slabs of a
// double buffer. The constructor allocates the full capacity once; Buffers
// partitions it per invocation so repeated scans do not churn the heap.
//
// An Arena is owned by a single scan invocation at a time. Callers that want
// concurrent scans must use one Arena per invocation.
type Arena[T hwy.Lanes] struct {
	a, b []T
}

// NewArena returns an arena with the default capacity of ArenaBytes per slab.
func NewArena[T hwy.Lanes]() *Arena[T] {
	var zero T
	return NewArenaSize[T](ArenaBytes / int(unsafe.Sizeof(zero)))
}

// NewArenaSize returns an arena holding capacity elements per slab.
func NewArenaSize[T hwy.Lanes](capacity int) *Arena[T] {
	var zero T
	return &Arena[T]{
		a: AllocAligned(capacity, zero),
		b: AllocAligned(capacity, zero),
	}
}

// Cap returns the per-slab capacity in elements.
func (ar *Arena[T]) Cap() int {
	return len(ar.a)
}

// Buffers returns the leading n elements of each slab, or a *CapacityError
// when n exceeds the arena capacity. The contents are whatever the previous
// invocation left behind; callers must initialize every element they read.
func (ar *Arena[T]) Buffers(n int) ([]T, []T, error) {
	if n > len(ar.a) {
		return nil, nil, &CapacityError{Capacity: len(ar.a), N: n}
	}
	return ar.a[:n], ar.b[:n], nil
}
