package layout

import "time"

const (
	TouchMoveSlopPx   = 10
	TouchLongPressDur = 360 * time.Millisecond
)

// Gesture is what a finished touch means.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureTap
	GestureLongPress
)

// Touch tracks one finger from press to release.
type Touch struct {
	X, Y         int
	LastX, LastY int
	At           time.Time
}

// Classify turns a released touch into a gesture. Touches that wandered
// further than the slop are drags and mean nothing.
func (t Touch) Classify(releasedAt time.Time) Gesture {
	if abs(t.LastX-t.X) > TouchMoveSlopPx || abs(t.LastY-t.Y) > TouchMoveSlopPx {
		return GestureNone
	}
	if releasedAt.Sub(t.At) >= TouchLongPressDur {
		return GestureLongPress
	}
	return GestureTap
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
