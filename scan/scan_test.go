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
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

var implementedKinds = []Kind{
	KindSequential,
	KindTree,
	KindTreeDoubleBuffered,
	KindSIMDDoubleBuffered,
	KindParallelDoubleBuffered,
}

func TestDispatchImplemented(t *testing.T) {
	for _, k := range implementedKinds {
		t.Run(k.String(), func(t *testing.T) {
			out := make([]int64, len(input8))
			require.NoError(t, Dispatch(k, Options{}, int64(0), input8, out))
			require.Equal(t, output8, out)
		})
	}
}

func TestDispatchUnimplemented(t *testing.T) {
	for _, k := range []Kind{KindParallel, KindGPU, KindGPUDoubleBuffered, Kind(99)} {
		t.Run(k.String(), func(t *testing.T) {
			out := make([]int64, len(input8))
			err := Dispatch(k, Options{}, int64(0), input8, out)
			require.ErrorIs(t, err, ErrUnimplemented)
		})
	}
}

// TestCrossStrategyEquivalence feeds randomized inputs to every implemented
// strategy and requires byte-identical output to the sequential baseline.
func TestCrossStrategyEquivalence(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for _, n := range []int{1, 2, 3, 7, 8, 9, 15, 16, 17, 31, 33, 100} {
		var identity int64
		f.Fuzz(&identity)
		in := make([]int64, n)
		for i := range in {
			var x int64
			f.Fuzz(&x)
			// keep magnitudes small enough that overflow wrapping does not
			// obscure a genuine mismatch
			in[i] = x % 1_000_000
		}
		want := make([]int64, n)
		require.NoError(t, Sequential(Options{}, identity, in, want))
		for _, k := range implementedKinds {
			out := make([]int64, n)
			require.NoError(t, Dispatch(k, Options{}, identity, in, out), "n=%d kind=%s", n, k)
			require.Equal(t, want, out, "n=%d kind=%s", n, k)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		id      int
		want    Kind
		wantErr bool
	}{
		{id: 0, want: KindSequential},
		{id: 3, want: KindSIMDDoubleBuffered},
		{id: 5, want: KindParallelDoubleBuffered},
		{id: 7, want: KindGPUDoubleBuffered},
		{id: -1, wantErr: true},
		{id: 8, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.id)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%d) = %v, want error", tt.id, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%d) error = %v", tt.id, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestKindUsageListsEveryKind(t *testing.T) {
	usage := KindUsage()
	for k := Kind(0); k < numKinds; k++ {
		if !strings.Contains(usage, k.String()) {
			t.Errorf("KindUsage() missing %q:\n%s", k, usage)
		}
	}
}

func TestLog2Ceil(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3},
		{8, 3}, {9, 4}, {15, 4}, {16, 4}, {17, 5}, {1024, 10},
	}
	for _, tt := range tests {
		if got := log2Ceil(tt.n); got != tt.want {
			t.Errorf("log2Ceil(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
