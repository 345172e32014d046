//go:build !windows

package console

// Attach reports whether stdout is usable; there is nothing to allocate
func Attach() bool {
	return true
}

// Allocated is always false outside Windows
func Allocated() bool {
	return false
}

// SetTitle is a no-op outside Windows
func SetTitle(title string) error {
	return nil
}
