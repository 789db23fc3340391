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

// TreeDoubleBuffered computes the same offset-doubling recurrence as Tree but
// reads every depth from the current buffer and writes to the next one, so
// index order within a depth is irrelevant. After the final depth the mode
// parity selects the buffer holding the result.
func TreeDoubleBuffered[T hwy.Lanes](o Options, identity T, in, out []T) error {
	if err := checkArgs(len(in), len(out)); err != nil {
		return err
	}
	n := len(out)
	if n == 0 {
		return nil
	}
	bufA := buf.Alloc(n, identity)
	bufB := buf.Alloc(n, identity)
	if err := buf.RotateRight(bufA, in, identity); err != nil {
		return err
	}
	copy(bufB, bufA)
	db := buf.NewDoubleBuffer(bufA, bufB)
	dEnd := log2Ceil(n)
	o.Log.Debug().Int("depths", dEnd).Msg("computing double-buffered tree scan")
	for d := 0; d < dEnd; d++ {
		offset := 1 << d
		src, dst := db.Current(), db.Next()
		o.Log.Debug().
			Int("depth", d).
			Int("offset", offset).
			Stringer("mode", db.Mode()).
			Msg("tree depth")
		for k := 0; k < n; k++ {
			if k >= offset {
				dst[k] = src[k-offset] + src[k]
			} else {
				dst[k] = src[k]
			}
		}
		db.Swap()
	}
	copy(out, db.Current())
	return nil
}
