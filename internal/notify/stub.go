//go:build !linux

package notify

// New returns Discard; desktop notifications need D-Bus.
func New() (Notifier, error) {
	return Discard, nil
}
