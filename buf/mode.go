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

import "github.com/ajroetker/go-highway/hwy"

// Mode identifies which half of a double buffer currently holds "current"
// data. The other half is the write target for the in-flight phase.
//
// Invariant: starting from ModeA, after d swaps the current buffer is A when
// d is even and B when d is odd. The tree strategies rely on this parity to
// select the buffer holding the final result.
type Mode uint8

const (
	// ModeA marks buffer A as current.
	ModeA Mode = iota
	// ModeB marks buffer B as current.
	ModeB
)

// Alternate returns the other mode.
func (m Mode) Alternate() Mode {
	if m == ModeA {
		return ModeB
	}
	return ModeA
}

// Swap toggles the mode in place.
func (m *Mode) Swap() {
	*m = m.Alternate()
}

func (m Mode) String() string {
	if m == ModeA {
		return "ModeA"
	}
	return "ModeB"
}

// DoubleBuffer pairs two equal-length buffers with a Mode. Each phase reads
// from Current and writes to Next, then calls Swap.
type DoubleBuffer[T hwy.Lanes] struct {
	a, b []T
	mode Mode
}

// NewDoubleBuffer wraps a and b with the mode set to ModeA.
func NewDoubleBuffer[T hwy.Lanes](a, b []T) *DoubleBuffer[T] {
	return &DoubleBuffer[T]{a: a, b: b}
}

// Current returns the buffer holding the data for the in-flight phase.
func (d *DoubleBuffer[T]) Current() []T {
	if d.mode == ModeA {
		return d.a
	}
	return d.b
}

// Next returns the write target for the in-flight phase.
func (d *DoubleBuffer[T]) Next() []T {
	if d.mode == ModeA {
		return d.b
	}
	return d.a
}

// Mode returns the current mode.
func (d *DoubleBuffer[T]) Mode() Mode {
	return d.mode
}

// Swap makes Next the new Current.
func (d *DoubleBuffer[T]) Swap() {
	d.mode.Swap()
}
