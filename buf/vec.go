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

	"github.com/ajroetker/go-highway/hwy"
)

// LaneMask builds a mask from a per-lane predicate over lane numbers
// [0, lanes). It is the generic replacement for fixed-width mask tables:
// one function serves every lane width hwy dispatches to.
//
// lanes must not exceed 64, which holds for every width hwy supports.
func LaneMask[T hwy.Lanes](lanes int, pred func(lane int) bool) hwy.Mask[T] {
	var bits uint64
	for l := 0; l < lanes; l++ {
		if pred(l) {
			bits |= 1 << l
		}
	}
	return hwy.MaskFromBits[T](bits)
}

// Swizzle gathers one vector's worth of elements from src at the given
// indices. Out-of-range indices yield def instead of faulting.
func Swizzle[T hwy.Lanes](def T, src []T, indices []int64) hwy.Vec[T] {
	lanes := hwy.MaxLanes[T]()
	if len(indices) < lanes {
		lanes = len(indices)
	}
	idx := hwy.IndicesFromFunc[int64](lanes, func(lane int) int64 {
		return indices[lane]
	})
	inRange := LaneMask[T](lanes, func(lane int) bool {
		return indices[lane] >= 0 && indices[lane] < int64(len(src))
	})
	return hwy.IfThenElse(inRange, hwy.GatherIndex(src, idx), hwy.Set(def))
}

// CopyVec copies src into dst one vector chunk at a time, masking the
// trailing partial chunk.
func CopyVec[T hwy.Lanes](dst, src []T) error {
	n := len(src)
	if len(dst) < n {
		return fmt.Errorf("buf: destination length %d shorter than source length %d", len(dst), n)
	}
	hwy.ProcessWithTail[T](n,
		func(off int) {
			hwy.Store(hwy.Load(src[off:]), dst[off:])
		},
		func(off, count int) {
			mask := hwy.TailMask[T](count)
			hwy.MaskStore(mask, hwy.MaskLoad(mask, src[off:]), dst[off:])
		},
	)
	return nil
}

// ClampVec writes src clamped to [lo, hi] into dst using vector min/max.
func ClampVec[T hwy.Lanes](dst, src []T, lo, hi T) error {
	n := len(src)
	if len(dst) < n {
		return fmt.Errorf("buf: destination length %d shorter than source length %d", len(dst), n)
	}
	vlo, vhi := hwy.Set(lo), hwy.Set(hi)
	hwy.ProcessWithTail[T](n,
		func(off int) {
			v := hwy.Load(src[off:])
			hwy.Store(hwy.Min(hwy.Max(v, vlo), vhi), dst[off:])
		},
		func(off, count int) {
			mask := hwy.TailMask[T](count)
			v := hwy.MaskLoad(mask, src[off:])
			hwy.MaskStore(mask, hwy.Min(hwy.Max(v, vlo), vhi), dst[off:])
		},
	)
	return nil
}

// RotateRightVec writes src rotated right by one position into dst using a
// gathered shifted-index load per chunk: dst[k] = src[k-1], dst[0] = src[n-1].
func RotateRightVec[T hwy.Lanes](dst, src []T) error {
	n := len(src)
	if len(dst) < n {
		return fmt.Errorf("buf: destination length %d shorter than source length %d", len(dst), n)
	}
	if n == 0 {
		return nil
	}
	lanes := hwy.MaxLanes[T]()
	for kk := 0; kk < n; kk += lanes {
		count := min(lanes, n-kk)
		idx := hwy.IndicesFromFunc[int64](lanes, func(lane int) int64 {
			return int64(kk + lane - 1)
		})
		// lane 0 of the first chunk has index -1 and gathers zero; the
		// wrapped element is patched in below.
		v := hwy.GatherIndex(src[:n], idx)
		hwy.MaskStore(hwy.TailMask[T](count), v, dst[kk:])
	}
	dst[0] = src[n-1]
	return nil
}
