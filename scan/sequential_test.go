package scan

import (
	"errors"
	"reflect"
	"testing"
)

// shared scenarios used across the strategy tests.
var (
	input8   = []int64{3, 1, 7, 0, 4, 1, 6, 3}
	output8  = []int64{0, 3, 4, 11, 11, 15, 16, 22}
	input16  = []int64{2, 2, 4, 8, 15, 12, 4, 19, 8, 11, 15, 12, 9, 17, 14, 15}
	output16 = []int64{0, 2, 4, 8, 16, 31, 43, 47, 66, 74, 85, 100, 112, 121, 138, 152}
)

func TestSequential(t *testing.T) {
	tests := []struct {
		name     string
		identity int64
		input    []int64
		want     []int64
	}{
		{
			name:  "empty",
			input: []int64{},
			want:  []int64{},
		},
		{
			name:  "single",
			input: []int64{7},
			want:  []int64{0},
		},
		{
			name:  "eight",
			input: input8,
			want:  output8,
		},
		{
			name:  "sixteen",
			input: input16,
			want:  output16,
		},
		{
			name:     "nonzero identity",
			identity: 5,
			input:    []int64{1, 2, 3, 4},
			want:     []int64{5, 6, 8, 11},
		},
		{
			name:  "negatives",
			input: []int64{-3, 2, -1, 5},
			want:  []int64{0, -3, -1, -2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]int64, len(tt.input))
			if err := Sequential(Options{}, tt.identity, tt.input, out); err != nil {
				t.Fatalf("Sequential() error = %v", err)
			}
			if !reflect.DeepEqual(out, tt.want) {
				t.Errorf("Sequential() = %v, want %v", out, tt.want)
			}
		})
	}
}

func TestSequentialArgumentMismatch(t *testing.T) {
	in := make([]int64, 4)
	out := make([]int64, 5)
	err := Sequential(Options{}, 0, in, out)
	var mismatch *ArgumentMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Sequential() error = %v, want *ArgumentMismatchError", err)
	}
	if mismatch.NIn != 4 || mismatch.NOut != 5 {
		t.Errorf("mismatch = %+v, want NIn=4 NOut=5", mismatch)
	}
}

func TestSequentialFirstElementIsIdentity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 32} {
		in := make([]int64, n)
		for i := range in {
			in[i] = int64(i) + 1
		}
		out := make([]int64, n)
		if err := Sequential(Options{}, 42, in, out); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if out[0] != 42 {
			t.Errorf("n=%d: out[0] = %d, want identity 42", n, out[0])
		}
	}
}
