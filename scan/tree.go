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

// Tree computes the exclusive prefix sum with the in-place offset-doubling
// tree: after rotating the input into out, each depth d adds out[k-2^d] into
// out[k] for every k >= 2^d, over ceil(log2 n) depths.
//
// Invariant: within a depth the update loop MUST run k in decreasing order.
// out[k] is both read (as the companion of k+offset', for updates already
// performed this depth) and written; ascending iteration would overwrite
// companion values before they are consumed. The descending traversal is the
// single-buffer substitute for double buffering and is covered by a test
// that demonstrates the ascending-order corruption.
func Tree[T hwy.Lanes](o Options, identity T, in, out []T) error {
	if err := checkArgs(len(in), len(out)); err != nil {
		return err
	}
	n := len(out)
	if n == 0 {
		return nil
	}
	if err := buf.RotateRight(out, in, identity); err != nil {
		return err
	}
	dEnd := log2Ceil(n)
	o.Log.Debug().Int("depths", dEnd).Msg("computing tree scan")
	for d := 0; d < dEnd; d++ {
		offset := 1 << d
		o.Log.Debug().Int("depth", d).Int("offset", offset).Msg("tree depth")
		for k := n - 1; k >= offset; k-- {
			out[k] += out[k-offset]
		}
	}
	return nil
}
