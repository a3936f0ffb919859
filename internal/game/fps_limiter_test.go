package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSLimiterUnlimited(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	f := NewFPSLimiter(200) // 5ms per frame
	start := time.Now()
	for i := 0; i < 4; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 18*time.Millisecond)
}

func TestFPSLimiterSetLimit(t *testing.T) {
	f := NewFPSLimiter(200)
	f.Wait()
	f.SetLimit(0)
	assert.True(t, f.next.IsZero())

	start := time.Now()
	f.Wait()
	assert.Less(t, time.Since(start), 5*time.Millisecond)
}

func TestFPSLimiterSchedule(t *testing.T) {
	f := NewFPSLimiter(100) // 10ms per frame
	base := time.Unix(1000, 0)

	assert.Equal(t, base.Add(10*time.Millisecond), f.schedule(base))
	// Chained from the previous deadline even if this frame started late
	assert.Equal(t, base.Add(20*time.Millisecond), f.schedule(base.Add(15*time.Millisecond)))
}

func TestFPSLimiterResyncAfterHitch(t *testing.T) {
	f := NewFPSLimiter(100)
	base := time.Unix(1000, 0)
	f.schedule(base)

	// Slightly late: keep the chain
	f.resync(base.Add(15 * time.Millisecond))
	assert.Equal(t, base.Add(10*time.Millisecond), f.next)

	// More than a period late: restart from now
	f.resync(base.Add(50 * time.Millisecond))
	assert.Equal(t, base.Add(60*time.Millisecond), f.next)
}
