package host

// Feedback names a notification haptic.
type Feedback string

const (
	FeedbackSuccess Feedback = "success"
	FeedbackError   Feedback = "error"
)

// Haptics fires notification feedback. Implementations may fail; callers
// ignore the error.
type Haptics interface {
	NotificationOccurred(f Feedback) error
}

// Nop discards all feedback.
type Nop struct{}

func (Nop) NotificationOccurred(Feedback) error { return nil }

// Toggle forwards to Inner only while Enabled returns true. It lets the
// vibration preference switch haptics on and off at runtime.
type Toggle struct {
	Inner   Haptics
	Enabled func() bool
}

func (t Toggle) NotificationOccurred(f Feedback) error {
	if t.Inner == nil || (t.Enabled != nil && !t.Enabled()) {
		return nil
	}
	return t.Inner.NotificationOccurred(f)
}
