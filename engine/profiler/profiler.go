package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate and memory statistics and reports them to the log at a
// fixed interval, followed by any extra fields supplied through WithStatus.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	clock          func() time.Time
	status         func() string
	logf           func(format string, args ...any)

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	lastReport Report
}

// Report is one interval's worth of statistics.
type Report struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
	Status      string
}

// String formats the report as a single log line.
func (r Report) String() string {
	line := fmt.Sprintf("FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)
	if r.Status != "" {
		line += " | " + r.Status
	}
	return line
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		clock:          time.Now,
		logf:           log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock()
	return p
}

// Tick should be called once per frame. When the update interval has elapsed it gathers
// FPS, heap, allocation rate and GC pauses, appends the status text and logs the line.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.clock()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		FPS:    float64(p.frameCount) / elapsed.Seconds(),
		HeapMB: float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:  float64(p.memStats.Sys) / 1024 / 1024,
	}
	// TotalAlloc only grows, so the delta is the churn over the interval
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	r.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		r.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
				r.MaxPauseUs = pause
			}
		}
	}
	if p.status != nil {
		r.Status = p.status()
	}

	p.logf("[Profiler] %s", r)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastReport = r
	return true
}

// LastReport returns the statistics of the most recent logged interval.
//
// Returns:
//   - Report: the last report, zero before the first interval elapses
func (p *Profiler) LastReport() Report {
	return p.lastReport
}
