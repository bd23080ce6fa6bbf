package profiler

import (
	"log"
	"runtime"
	"sync/atomic"
	"time"
)

// Stats is one profiling interval.
type Stats struct {
	// TicksPerSecond is the engine tick rate measured over the interval.
	TicksPerSecond float64
	// EventsPerSecond is the rate of input events recorded over the interval.
	EventsPerSecond float64
	// HeapMB is the live heap at the end of the interval.
	HeapMB float64
	// GCCount is the cumulative number of completed GC cycles.
	GCCount uint32
}

// Profiler tracks tick rate, input event rate and memory statistics.
// Tick is called from the engine loop; RecordEvent may be called from any goroutine.
type Profiler struct {
	tickCount      int
	events         atomic.Int64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	last           Stats
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second; a non-positive
// interval keeps the default.
//
// Parameters:
//   - interval: how often statistics are computed and logged
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// RecordEvent counts one handled input event.
func (p *Profiler) RecordEvent() {
	p.events.Add(1)
}

// Tick should be called once per engine tick.
// Logs statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	stats, ok := p.tick(time.Now())
	if !ok {
		return false
	}
	log.Printf("[Profiler] TPS: %.2f | Events: %.2f/s | Heap: %.2f MB | GC: %d",
		stats.TicksPerSecond, stats.EventsPerSecond, stats.HeapMB, stats.GCCount)
	return true
}

// Last returns the statistics of the most recent completed interval.
func (p *Profiler) Last() Stats {
	return p.last
}

func (p *Profiler) tick(now time.Time) (Stats, bool) {
	p.tickCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()
	stats := Stats{
		TicksPerSecond:  float64(p.tickCount) / seconds,
		EventsPerSecond: float64(p.events.Swap(0)) / seconds,
		HeapMB:          float64(p.memStats.Alloc) / 1024 / 1024,
		GCCount:         p.memStats.NumGC,
	}

	p.tickCount = 0
	p.lastTime = now
	p.last = stats
	return stats, true
}
