//go:build windows

package server

// setSocketPermissions is a no-op on Windows.
// Named pipe access is managed through Windows ACLs on the listener.
func setSocketPermissions(path string) {
}
