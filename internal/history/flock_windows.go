//go:build windows

package history

import (
	"golang.org/x/sys/windows"
)

// flockExclusive acquires an exclusive lock on the file descriptor, so two
// bish sessions saving history at the same time don't interleave writes.
func flockExclusive(fd uintptr) error {
	var overlapped windows.Overlapped
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK,
		0,
		0xFFFFFFFF,
		0,
		&overlapped,
	)
}

// flockUnlock releases the lock on the file descriptor.
func flockUnlock(fd uintptr) error {
	var overlapped windows.Overlapped
	return windows.UnlockFileEx(
		windows.Handle(fd),
		0,
		0xFFFFFFFF,
		0,
		&overlapped,
	)
}
