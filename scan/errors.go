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
	"errors"
	"fmt"
)

// ErrUnimplemented is returned by strategy identifiers that have no real
// algorithm behind them, including the accelerator slots.
var ErrUnimplemented = errors.New("scan: strategy not implemented")

// ArgumentMismatchError reports input and output sequences of different
// lengths. It is checked before any other work at every strategy entry point.
type ArgumentMismatchError struct {
	NIn  int
	NOut int
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("scan: input length %d does not match output length %d", e.NIn, e.NOut)
}

// WorkerCommunicationError reports a failed acknowledgment receive during the
// parallel strategy's per-depth handshake. It is unrecoverable for the
// invocation that observes it.
type WorkerCommunicationError struct {
	Depth int
	Phase string // "received" or "completed"
}

func (e *WorkerCommunicationError) Error() string {
	return fmt.Sprintf("scan: failed work %s phase for depth %d", e.Phase, e.Depth)
}

func checkArgs(nIn, nOut int) error {
	if nIn != nOut {
		return &ArgumentMismatchError{NIn: nIn, NOut: nOut}
	}
	return nil
}
