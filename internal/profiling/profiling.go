// Package profiling collects per-frame CPU section timings.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("scene.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats the n slowest sections of the current frame, e.g.
// "scene.Render:4.2ms, lightcube.Render:0.1ms"
func TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	ss := Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", p.name, float64(p.dur.Microseconds())/1000.0))
	}
	return strings.Join(parts, ", ")
}

// Reporter logs FPS and the slowest sections at debug level once per interval
type Reporter struct {
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time

	frames int
	since  time.Time
}

func NewReporter(log *zap.Logger, interval time.Duration) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{log: log.Named("profiling"), interval: interval, now: time.Now}
}

// EndFrame counts a frame and reports when the interval has elapsed.
// It returns the measured FPS when a report was emitted.
func (r *Reporter) EndFrame() (float64, bool) {
	now := r.now()
	if r.since.IsZero() {
		r.since = now
		return 0, false
	}
	r.frames++

	elapsed := now.Sub(r.since)
	if elapsed < r.interval {
		return 0, false
	}

	fps := float64(r.frames) / elapsed.Seconds()
	r.log.Debug("frame stats",
		zap.Float64("fps", fps),
		zap.String("top", TopN(5)))
	r.frames = 0
	r.since = now
	return fps, true
}
