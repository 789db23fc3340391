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

import "github.com/ajroetker/go-highway/hwy"

// Sequential computes the exclusive prefix sum in a single pass:
// out[0] = identity, out[k] = in[k-1] + out[k-1]. It is the correctness
// oracle for every other strategy.
func Sequential[T hwy.Lanes](o Options, identity T, in, out []T) error {
	if err := checkArgs(len(in), len(out)); err != nil {
		return err
	}
	n := len(out)
	if n == 0 {
		return nil
	}
	out[0] = identity
	for k := 1; k < n; k++ {
		out[k] = in[k-1] + out[k-1]
	}
	return nil
}
