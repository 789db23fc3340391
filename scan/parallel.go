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
	"runtime"
	"sync"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/rs/zerolog"

	"github.com/ajroetker/go-scan/buf"
)

// workStatus is the single piece of mutex-guarded state shared between the
// orchestrator and the workers. It is created fresh for every invocation and
// holds one of three states: no work published, work published for the
// current depth, or shutdown.
type workStatus struct {
	mu     sync.Mutex
	state  workState
	offset int
	mode   buf.Mode
}

type workState uint8

const (
	noWorkPresent workState = iota
	workPresent
	shutdown
)

func (s workState) String() string {
	switch s {
	case noWorkPresent:
		return "NoWorkPresent"
	case workPresent:
		return "WorkPresent"
	case shutdown:
		return "Shutdown"
	default:
		return "unknown"
	}
}

func (w *workStatus) set(state workState, offset int, mode buf.Mode) {
	w.mu.Lock()
	w.state = state
	w.offset = offset
	w.mode = mode
	w.mu.Unlock()
}

func (w *workStatus) get() (workState, int, buf.Mode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state, w.offset, w.mode
}

// workGroup describes one worker's slice of the index space for one depth.
// It is recreated every depth from the published workStatus, never persisted.
type workGroup struct {
	id     int
	n      int
	offset int
	chunk  int
	mode   buf.Mode
}

// process applies one depth of the double-buffered tree recurrence over the
// group's chunk [id*chunk, min(n, (id+1)*chunk)). It reads only from the
// mode-selected current buffer and writes only its own disjoint chunk of the
// next buffer, which is what makes the concurrent writes safe without
// per-element locking.
func process[T hwy.Lanes](g workGroup, bufA, bufB []T) {
	kBegin := g.id * g.chunk
	kEnd := min(g.n, kBegin+g.chunk)
	src, dst := bufA, bufB
	if g.mode == buf.ModeB {
		src, dst = bufB, bufA
	}
	for k := kBegin; k < kEnd; k++ {
		if k >= g.offset {
			dst[k] = src[k-g.offset] + src[k]
		} else {
			dst[k] = src[k]
		}
	}
}

// Parallel computes the exclusive prefix sum with a pool of workers, one per
// output chunk, using a freshly allocated arena. Use ParallelArena to reuse
// scratch storage across invocations.
func Parallel[T hwy.Lanes](o Options, identity T, in, out []T) error {
	if err := checkArgs(len(in), len(out)); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	return ParallelArena(o, buf.NewArena[T](), identity, in, out)
}

// ParallelArena computes the exclusive prefix sum by partitioning every
// depth of the double-buffered tree into fixed-size chunks, each owned by a
// persistent worker goroutine spawned for the lifetime of this call.
//
// Coordination per depth is a three-phase rendezvous: the orchestrator
// publishes the depth's offset and buffer mode in the workStatus mailbox and
// releases the barrier; every worker acknowledges receipt, processes its
// chunk, and acknowledges completion; the orchestrator drains both
// acknowledgment channels before toggling the buffer mode and publishing the
// next depth. The barrier guarantees no worker reads a depth's status before
// it is published and that the status is not overwritten before every worker
// has observed it; the two-phase acknowledgment distinguishes "all workers
// started" from "all workers finished", which must hold before the mode is
// toggled. After the final depth the orchestrator publishes shutdown,
// releases the barrier once more, and waits for every worker to exit.
//
// The arena bounds the backing storage; lengths beyond its capacity fail
// with *buf.CapacityError before any worker is spawned. The caller owns the
// arena for the duration of the call.
func ParallelArena[T hwy.Lanes](o Options, arena *buf.Arena[T], identity T, in, out []T) error {
	if err := checkArgs(len(in), len(out)); err != nil {
		return err
	}
	n := len(out)
	if n == 0 {
		return nil
	}
	bufA, bufB, err := arena.Buffers(n)
	if err != nil {
		return err
	}
	chunk := o.ChunkSize
	if chunk <= 0 {
		chunk = ceilDiv(n, runtime.GOMAXPROCS(0))
	}
	nChunks := ceilDiv(n, chunk)
	dEnd := log2Ceil(n)

	bufA[0] = identity
	copy(bufA[1:], in[:n-1])
	copy(bufB, bufA)

	status := &workStatus{}
	bar := newBarrier(nChunks + 1)
	received := make(chan struct{}, nChunks)
	completed := make(chan struct{}, nChunks)
	var wg sync.WaitGroup
	o.Log.Debug().
		Int("workers", nChunks).
		Int("chunk", chunk).
		Int("depths", dEnd).
		Msg("spawning worker pool")
	for id := 0; id < nChunks; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(o.Log.With().Int("worker", id).Logger(),
				id, n, chunk, bufA, bufB, bar, status, received, completed)
		}(id)
	}

	mode := buf.ModeA
	for d := 0; d < dEnd; d++ {
		offset := 1 << d
		o.Log.Debug().
			Int("depth", d).
			Int("offset", offset).
			Stringer("mode", mode).
			Msg("publishing work")
		status.set(workPresent, offset, mode)
		bar.Wait()
		if !drain(received, nChunks) {
			return &WorkerCommunicationError{Depth: d, Phase: "received"}
		}
		status.set(noWorkPresent, 0, mode)
		if !drain(completed, nChunks) {
			return &WorkerCommunicationError{Depth: d, Phase: "completed"}
		}
		mode.Swap()
	}

	o.Log.Debug().Msg("shutting down worker pool")
	status.set(shutdown, 0, mode)
	bar.Wait()
	wg.Wait()

	if mode == buf.ModeA {
		copy(out, bufA)
	} else {
		copy(out, bufB)
	}
	return nil
}

// worker loops over depths: rendezvous at the barrier, read the published
// status under the lock, then either exit on shutdown, spin back on
// noWorkPresent, or acknowledge, process the chunk, and acknowledge again.
func worker[T hwy.Lanes](log zerolog.Logger, id, n, chunk int, bufA, bufB []T,
	bar *barrier, status *workStatus, received, completed chan<- struct{}) {
	log.Debug().Msg("starting worker")
	for {
		bar.Wait()
		state, offset, mode := status.get()
		switch state {
		case shutdown:
			log.Debug().Msg("shutting down")
			return
		case noWorkPresent:
			continue
		}
		received <- struct{}{}
		log.Debug().Int("offset", offset).Stringer("mode", mode).Msg("processing chunk")
		process(workGroup{id: id, n: n, offset: offset, chunk: chunk, mode: mode}, bufA, bufB)
		completed <- struct{}{}
	}
}

// drain receives n acknowledgments, reporting false if the channel was
// closed out from under the orchestrator.
func drain(ch <-chan struct{}, n int) bool {
	for i := 0; i < n; i++ {
		if _, ok := <-ch; !ok {
			return false
		}
	}
	return true
}
