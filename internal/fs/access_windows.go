//go:build windows

package fs

// Windows has no access(2); assume writable and let the mutating call fail.

func writable(dir string) error {
	_ = dir
	return nil
}
