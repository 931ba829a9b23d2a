package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/04pril/minesweeper-miniapp/internal/host"
)

// Vibrator plays notification haptics through the device vibrator. Desktop
// platforms ignore the request.
type Vibrator struct{}

func (Vibrator) NotificationOccurred(f host.Feedback) error {
	opts := &ebiten.VibrateOptions{}
	switch f {
	case host.FeedbackSuccess:
		opts.Duration, opts.Magnitude = 80*time.Millisecond, 0.5
	case host.FeedbackError:
		opts.Duration, opts.Magnitude = 250*time.Millisecond, 1
	default:
		return fmt.Errorf("unknown feedback %q", f)
	}
	ebiten.Vibrate(opts)
	return nil
}
