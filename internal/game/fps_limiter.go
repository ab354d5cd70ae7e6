package game

import (
	"time"

	"mini-voxel/internal/config"
)

// backgroundFPS caps the frame rate while the window is unfocused.
const backgroundFPS = 30

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame should be rendered based on the FPS limit.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait(background bool) {
	f.waitFor(f.target(background))
}

// target returns the frame period, 0 when frames are not limited.
func (f *FPSLimiter) target(background bool) time.Duration {
	effectiveLimit := config.GetFPSLimit()
	if background && (effectiveLimit <= 0 || effectiveLimit > backgroundFPS) {
		effectiveLimit = backgroundFPS
	}

	if effectiveLimit <= 0 {
		return 0
	}
	return time.Second / time.Duration(effectiveLimit)
}

func (f *FPSLimiter) waitFor(target time.Duration) {
	if target <= 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait for the final few microseconds
		// yields substantially better precision on high FPS caps
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
