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

package scan

import (
	"github.com/ajroetker/go-highway/hwy"

	"github.com/ajroetker/go-scan/buf"
)

// SIMDDoubleBuffered vectorizes the double-buffered tree over
// hwy.MaxLanes[T]() lanes. Each depth processes the output index space one
// lane-chunk at a time:
//
//   - lane index vector k and companion vector j = k - offset are derived
//     from the chunk base;
//   - maskEnK marks lanes with k >= offset, maskEnJ marks lanes whose
//     companion is in bounds, and their conjunction maskEnKJ marks lanes
//     that add the companion value; maskDisK (the complement of maskEnK)
//     marks lanes that copy through unchanged;
//   - the current-buffer value at k is loaded under a tail mask, the value
//     at j is gathered under maskEnKJ, and the passthrough and sum vectors
//     are stored to the next buffer under maskDisK and maskEnKJ. The two
//     stores are disjoint and together cover every valid lane exactly once.
//
// Lanes past the end of the sequence are never read or written: loads and
// stores are clamped by slicing the buffers at the chunk boundary and the
// gather masks exclude out-of-range companions.
func SIMDDoubleBuffered[T hwy.Lanes](o Options, identity T, in, out []T) error {
	if err := checkArgs(len(in), len(out)); err != nil {
		return err
	}
	n := len(out)
	if n == 0 {
		return nil
	}
	lanes := hwy.MaxLanes[T]()
	bufA := buf.AllocAligned(n, identity)
	bufB := buf.AllocAligned(n, identity)
	if err := buf.RotateRightVec(bufA, in); err != nil {
		return err
	}
	bufA[0] = identity
	if err := buf.CopyVec(bufB, bufA); err != nil {
		return err
	}
	db := buf.NewDoubleBuffer(bufA, bufB)
	nChunks := ceilDiv(n, lanes)
	dEnd := log2Ceil(n)
	o.Log.Debug().
		Int("depths", dEnd).
		Int("lanes", lanes).
		Str("dispatch", hwy.CurrentName()).
		Msg("computing vectorized tree scan")
	for d := 0; d < dEnd; d++ {
		offset := 1 << d
		src, dst := db.Current(), db.Next()
		o.Log.Debug().
			Int("depth", d).
			Int("offset", offset).
			Stringer("mode", db.Mode()).
			Msg("tree depth")
		for c := 0; c < nChunks; c++ {
			kk := c * lanes
			kkEnd := min(n, kk+lanes)
			maskEnK := buf.LaneMask[T](lanes, func(lane int) bool {
				return kk+lane >= offset
			})
			maskEnJ := buf.LaneMask[T](lanes, func(lane int) bool {
				return kk+lane-offset < n
			})
			maskEnKJ := hwy.MaskAnd(maskEnK, maskEnJ)
			maskDisK := hwy.MaskNot(maskEnK)
			idxJ := hwy.IndicesFromFunc[int64](lanes, func(lane int) int64 {
				return int64(kk + lane - offset)
			})
			ldK := hwy.MaskLoad(hwy.TailMask[T](kkEnd-kk), src[kk:kkEnd])
			ldJ := hwy.GatherIndexMasked(src, idxJ, maskEnKJ)
			sum := hwy.Add(ldK, ldJ)
			hwy.MaskStore(maskDisK, ldK, dst[kk:kkEnd])
			hwy.MaskStore(maskEnKJ, sum, dst[kk:kkEnd])
		}
		db.Swap()
	}
	return buf.CopyVec(out, db.Current())
}
