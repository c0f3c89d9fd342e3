package carousel

import "time"

// Cancel stops a scheduled callback. Calling it more than once is harmless.
type Cancel func()

// Host is the cooperative scheduler a lane runs on. Every callback it
// invokes runs on the same logical thread as the lane's event handlers.
type Host interface {
	Now() time.Time
	// RequestFrame runs fn once at the next display frame.
	RequestFrame(fn func()) Cancel
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Cancel
}
