package sorter

import (
	"runtime"
	"time"
)

// Metrics is a snapshot of the counters for a single Sort call. It is
// reset when Sort starts and finalized immediately before Sort returns;
// callers must treat it as read-only.
type Metrics struct {
	Elapsed          time.Duration
	RecordsProcessed int64
	RecordsPerSecond float64
	RunsCreated      int
	MergePasses      int
	TempFilesCreated int
	// PeakMemoryBytes is the largest heap allocation observed at run
	// boundaries; an approximation, not a hard cap.
	PeakMemoryBytes uint64
	BytesRead       int64
	BytesWritten    int64

	start time.Time
}

func (m *Metrics) reset() {
	*m = Metrics{start: time.Now()}
}

func (m *Metrics) observeMemory() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc > m.PeakMemoryBytes {
		m.PeakMemoryBytes = ms.HeapAlloc
	}
}

func (m *Metrics) finalize() {
	m.observeMemory()
	m.Elapsed = time.Since(m.start)
	if secs := m.Elapsed.Seconds(); secs > 0 {
		m.RecordsPerSecond = float64(m.RecordsProcessed) / secs
	}
}
