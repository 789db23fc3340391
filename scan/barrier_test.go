package scan

import (
	"sync"
	"sync/atomic"
	"testing"
)

// TestBarrierCyclic drives several participants through repeated
// generations and checks that nobody passes a generation before every
// participant has arrived.
func TestBarrierCyclic(t *testing.T) {
	const (
		participants = 4
		generations  = 50
	)
	bar := newBarrier(participants)
	var arrived atomic.Int64
	var wg sync.WaitGroup
	for p := 0; p < participants; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := 0; g < generations; g++ {
				arrived.Add(1)
				bar.Wait()
				// every participant of generation g has arrived by now
				if got := arrived.Load(); got < int64((g+1)*participants) {
					t.Errorf("generation %d: passed barrier after only %d arrivals", g, got)
					return
				}
			}
		}()
	}
	wg.Wait()
	if got := arrived.Load(); got != participants*generations {
		t.Fatalf("arrivals = %d, want %d", got, participants*generations)
	}
}
