// Package metrics provides runtime metric collection and report writing for
// the benchmark harness.
package metrics

import (
	"runtime"
	"runtime/debug"
	"time"
)

// Snapshot is a point-in-time view of runtime memory state.
type Snapshot struct {
	TS           time.Time
	HeapAlloc    uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// Take collects the current runtime metrics.
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:           time.Now(),
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// GC triggers a collection and returns freed memory to the OS, so per-size
// rows measure the index rather than garbage from the previous size.
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}
