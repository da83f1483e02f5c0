//go:build unix

package fs

import (
	"os"
	"syscall"
)

// stat_unix.go extracts inode and device information from syscall.Stat_t on
// Unix systems. The device id decides whether a hard-link restore can work at
// all; the inode is used for change detection during copy and for link
// verification.

func inodeOf(info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return st.Ino
}

func devOf(info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return uint64(st.Dev)
}
