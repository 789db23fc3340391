package scan

import (
	"fmt"
	"testing"
)

func benchInput(n int) []int64 {
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i%97 - 48)
	}
	return in
}

func BenchmarkStrategies(b *testing.B) {
	for _, n := range []int{64, 1024, 4096} {
		in := benchInput(n)
		out := make([]int64, n)
		for _, k := range implementedKinds {
			b.Run(fmt.Sprintf("%s/n=%d", k, n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					if err := Dispatch(k, Options{}, int64(0), in, out); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
