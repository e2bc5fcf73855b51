// Package notify sends desktop notifications through the native mechanism of
// the host platform: notify-send on Linux and osascript on macOS. Everything
// else gets a no-op notifier.
package notify

// Notifier delivers desktop notifications.
type Notifier interface {
	// Send shows a notification with the given title and body.
	Send(title, body string) error

	// IsSupported reports whether this platform can deliver notifications.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, body string) error { return nil }

func (noopNotifier) IsSupported() bool { return false }

// New returns the notifier for the current platform, falling back to a no-op
// notifier when the platform tooling is missing.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// Disabled returns a notifier that drops everything. Used when notifications
// are switched off in config.
func Disabled() Notifier {
	return noopNotifier{}
}
