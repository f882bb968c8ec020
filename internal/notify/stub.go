//go:build !linux

package notify

// New returns a notifier that drops everything. Desktop notifications need
// D-Bus.
func New() Notifier {
	return nopNotifier{}
}
