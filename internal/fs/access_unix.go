//go:build unix

package fs

import "golang.org/x/sys/unix"

// probes directory writability with access(2) using the real uid/gid.
// Checked before any mutating call so permission failures surface as a
// clean per-request error instead of a half-done copy.

func writable(dir string) error {
	return unix.Access(dir, unix.W_OK)
}
