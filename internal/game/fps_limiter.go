package game

import "time"

// spinWindow is how close to the deadline Wait stops sleeping and polls the clock
const spinWindow = 200 * time.Microsecond

// FPSLimiter caps the frame rate. A zero or negative limit means uncapped.
type FPSLimiter struct {
	limit int
	next  time.Time
}

func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit}
}

// SetLimit changes the cap and restarts the schedule
func (f *FPSLimiter) SetLimit(limit int) {
	f.limit = limit
	f.next = time.Time{}
}

// Wait blocks until the current frame's deadline has passed.
// It sleeps until spinWindow before the deadline and polls after that,
// since sleep granularity is too coarse for caps above a few hundred fps.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	deadline := f.schedule(time.Now())
	for {
		left := time.Until(deadline)
		if left <= 0 {
			break
		}
		if left > spinWindow {
			time.Sleep(left - spinWindow)
		}
	}

	f.resync(time.Now())
}

func (f *FPSLimiter) period() time.Duration {
	return time.Second / time.Duration(f.limit)
}

// schedule advances the deadline by one period. Deadlines are chained from
// the previous one, not from now, so frame time does not accumulate drift.
func (f *FPSLimiter) schedule(now time.Time) time.Time {
	if f.next.IsZero() {
		f.next = now
	}
	f.next = f.next.Add(f.period())
	return f.next
}

// resync restarts the chain after a hitch longer than one period;
// otherwise the following frames would run uncapped to catch up.
func (f *FPSLimiter) resync(now time.Time) {
	if now.Sub(f.next) > f.period() {
		f.next = now.Add(f.period())
	}
}
