package keystroke

import (
	"context"
	"time"
)

// Calibrate counts down from countdown seconds, calling tick with the
// remaining seconds, and then captures the mouse position.
func Calibrate(ctx context.Context, desktop Desktop, countdown int, tick func(remaining int)) (Point, error) {
	for remaining := countdown; remaining > 0; remaining-- {
		if tick != nil {
			tick(remaining)
		}

		timer := time.NewTimer(time.Second)

		select {
		case <-ctx.Done():
			timer.Stop()

			return Point{}, ctx.Err()
		case <-timer.C:
		}
	}

	x, y := desktop.MousePosition()

	return Point{X: x, Y: y}, nil
}
