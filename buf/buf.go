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

// Package buf provides the buffer primitives shared by the scan strategies:
// aligned allocation, bulk copy/concat/clamp, single-element right rotation,
// double-buffer bookkeeping, and a bounded scratch arena.
//
// The vectorized variants (see vec.go) are built on the portable SIMD
// operations from github.com/ajroetker/go-highway/hwy and handle partial
// trailing chunks with lane masks rather than per-element branches.
package buf

import (
	"fmt"
	"unsafe"

	"github.com/ajroetker/go-highway/hwy"
)

// Alignment is the byte boundary guaranteed by AllocAligned. 64 bytes covers
// the widest vector registers hwy dispatches to (AVX-512) as well as the
// common cache-line size.
const Alignment = 64

// Alloc returns a slice of n elements, every element set to def.
func Alloc[T hwy.Lanes](n int, def T) []T {
	v := make([]T, n)
	for i := range v {
		v[i] = def
	}
	return v
}

// AllocAligned returns a slice of n elements set to def whose first element
// lies on an Alignment-byte boundary. It over-allocates and re-slices at the
// aligned offset, so the returned slice must not be append-grown.
func AllocAligned[T hwy.Lanes](n int, def T) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if n == 0 {
		return []T{}
	}
	slack := Alignment / size
	raw := make([]T, n+slack)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	off := 0
	if rem := addr % Alignment; rem != 0 {
		off = (Alignment - int(rem)) / size
	}
	v := raw[off : off+n : off+n]
	for i := range v {
		v[i] = def
	}
	return v
}

// Copy copies src into dst. dst must be at least as long as src.
func Copy[T hwy.Lanes](dst, src []T) error {
	if len(dst) < len(src) {
		return fmt.Errorf("buf: destination length %d shorter than source length %d", len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// Concat writes a followed by b into dst. dst must hold both.
func Concat[T hwy.Lanes](dst, a, b []T) error {
	if len(dst) < len(a)+len(b) {
		return fmt.Errorf("buf: destination length %d shorter than source lengths %d + %d",
			len(dst), len(a), len(b))
	}
	copy(dst, a)
	copy(dst[len(a):], b)
	return nil
}

// Clamp writes src clamped to [lo, hi] into dst.
func Clamp[T hwy.Lanes](dst, src []T, lo, hi T) error {
	if len(dst) < len(src) {
		return fmt.Errorf("buf: destination length %d shorter than source length %d", len(dst), len(src))
	}
	for i, x := range src {
		if x < lo {
			x = lo
		} else if x > hi {
			x = hi
		}
		dst[i] = x
	}
	return nil
}

// RotateRight writes src rotated right by one position into dst, with dst[0]
// forced to def: dst[0] = def, dst[k] = src[k-1]. This establishes the
// initial exclusive-scan layout used by the tree strategies.
func RotateRight[T hwy.Lanes](dst, src []T, def T) error {
	n := len(src)
	if len(dst) < n {
		return fmt.Errorf("buf: destination length %d shorter than source length %d", len(dst), n)
	}
	if n == 0 {
		return nil
	}
	copy(dst[1:n], src[:n-1])
	dst[0] = def
	return nil
}
