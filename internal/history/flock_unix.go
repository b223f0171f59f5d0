//go:build !windows

package history

import (
	"syscall"
)

// flockExclusive acquires an exclusive lock on the file descriptor, so two
// bish sessions saving history at the same time don't interleave writes.
func flockExclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX)
}

// flockUnlock releases the lock on the file descriptor.
func flockUnlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
