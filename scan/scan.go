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

// Package scan computes exclusive prefix sums with interchangeable execution
// strategies: a sequential baseline, single- and double-buffered
// offset-doubling tree algorithms, a vectorized double-buffered tree built on
// github.com/ajroetker/go-highway/hwy, and a worker-pool parallel tree.
//
// All strategies share one contract: given an identity value and input and
// output slices of equal length n, they write out[k] = identity + in[0] +
// ... + in[k-1], with out[0] = identity. Every strategy produces output
// identical to Sequential.
package scan

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/rs/zerolog"
)

// Kind identifies one scan strategy. The identifier space deliberately keeps
// a slot per strategy family so CLI ids stay stable even for the slots that
// resolve to ErrUnimplemented.
type Kind int8

const (
	// KindSequential is the single-pass O(n) baseline.
	KindSequential Kind = iota
	// KindTree is the in-place O(n log n) offset-doubling tree.
	KindTree
	// KindTreeDoubleBuffered is the tree algorithm over a double buffer.
	KindTreeDoubleBuffered
	// KindSIMDDoubleBuffered vectorizes the double-buffered tree.
	KindSIMDDoubleBuffered
	// KindParallel is a single-buffer parallel tree slot; unimplemented.
	KindParallel
	// KindParallelDoubleBuffered is the worker-pool double-buffered tree.
	KindParallelDoubleBuffered
	// KindGPU is the accelerator slot; unimplemented here.
	KindGPU
	// KindGPUDoubleBuffered is the double-buffered accelerator slot;
	// unimplemented here.
	KindGPUDoubleBuffered

	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindSequential:
		return "seq"
	case KindTree:
		return "tree"
	case KindTreeDoubleBuffered:
		return "tree2x"
	case KindSIMDDoubleBuffered:
		return "simd2x"
	case KindParallel:
		return "par"
	case KindParallelDoubleBuffered:
		return "par2x"
	case KindGPU:
		return "gpu"
	case KindGPUDoubleBuffered:
		return "gpu2x"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Implemented reports whether the kind dispatches to a real algorithm.
func (k Kind) Implemented() bool {
	switch k {
	case KindSequential, KindTree, KindTreeDoubleBuffered,
		KindSIMDDoubleBuffered, KindParallelDoubleBuffered:
		return true
	}
	return false
}

// ParseKind converts a numeric identifier into a Kind.
func ParseKind(id int) (Kind, error) {
	if id < 0 || id >= int(numKinds) {
		return 0, fmt.Errorf("scan: invalid strategy id %d", id)
	}
	return Kind(id), nil
}

// KindUsage returns a one-line-per-strategy listing for CLI usage text.
func KindUsage() string {
	s := "Strategies:\n"
	for k := Kind(0); k < numKinds; k++ {
		s += fmt.Sprintf("*  %d => %s", int(k), k)
		if !k.Implemented() {
			s += " (unimplemented)"
		}
		s += "\n"
	}
	return s
}

// Options carries cross-strategy configuration. The zero value is valid:
// logging disabled, parallel chunk size derived from GOMAXPROCS.
type Options struct {
	// Log receives per-depth and per-worker trace events at debug level.
	Log zerolog.Logger

	// ChunkSize is the number of output elements owned by each worker of
	// the parallel strategy. Zero picks ceil(n / GOMAXPROCS).
	ChunkSize int
}

// Dispatch invokes exactly one strategy selected by kind. Identifiers without
// an implementation return ErrUnimplemented and never panic.
func Dispatch[T hwy.Lanes](k Kind, o Options, identity T, in, out []T) error {
	switch k {
	case KindSequential:
		return Sequential(o, identity, in, out)
	case KindTree:
		return Tree(o, identity, in, out)
	case KindTreeDoubleBuffered:
		return TreeDoubleBuffered(o, identity, in, out)
	case KindSIMDDoubleBuffered:
		return SIMDDoubleBuffered(o, identity, in, out)
	case KindParallelDoubleBuffered:
		return Parallel(o, identity, in, out)
	default:
		return fmt.Errorf("%w: %s", ErrUnimplemented, k)
	}
}

// log2Ceil returns ceil(log2(n)), the number of tree depths needed for a
// sequence of length n. log2Ceil(0) and log2Ceil(1) are 0.
func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
