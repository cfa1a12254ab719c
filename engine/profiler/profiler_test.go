package profiler

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(func() time.Time { return now }),
		WithLogger(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	for i := 0; i < 99; i++ {
		now = now.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("Tick() %d reported before the interval elapsed", i)
		}
	}
	now = now.Add(10 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("Tick() did not report once a full second elapsed")
	}
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(lines))
	}

	now = now.Add(10 * time.Millisecond)
	if p.Tick() {
		t.Errorf("Tick() reported again right after a report")
	}
}

func TestReportContent(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithStatus(func() string { return "weights A=0.20 B=0.00" }),
		WithLogger(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	for i := 0; i < 50; i++ {
		now = now.Add(20 * time.Millisecond)
		p.Tick()
	}
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(lines))
	}
	r := p.LastReport()
	if math.Abs(r.FPS-50) > 1e-9 {
		t.Errorf("FPS = %v, want 50", r.FPS)
	}
	if r.HeapMB <= 0 {
		t.Errorf("HeapMB = %v, want > 0", r.HeapMB)
	}
	if !strings.HasPrefix(lines[0], "[Profiler] FPS: 50.00") {
		t.Errorf("line = %q, want [Profiler] prefix and FPS", lines[0])
	}
	if !strings.HasSuffix(lines[0], "| weights A=0.20 B=0.00") {
		t.Errorf("line = %q, want status suffix", lines[0])
	}
}

func TestReportStringWithoutStatus(t *testing.T) {
	r := Report{FPS: 60}
	if strings.Contains(r.String(), "| |") || strings.HasSuffix(r.String(), "| ") {
		t.Errorf("String() = %q, want no trailing status separator", r.String())
	}
}
