// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !windows

package shmchan

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapNamedPage create-or-opens a regular file at key, sizes it to size bytes,
// and maps it MAP_SHARED so that two independent mappings of the same file
// (from two processes, or from two objects in one process during tests) see
// each other's writes. A plain file under a shared directory (rather than
// shm_open's separate POSIX shared-memory namespace) is used because it needs
// no additional syscall beyond what golang.org/x/sys/unix already exposes and
// behaves identically under mmap for this purpose.
func mapNamedPage(key string, size int) (raw []byte, closeFn func() error, err error) {
	f, err := os.OpenFile(key, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil, err
	}
	if err = f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	raw, err = unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	// The file descriptor is not needed once mapped; the mapping keeps the
	// underlying page alive independent of the fd or file name.
	if err = f.Close(); err != nil {
		_ = unix.Munmap(raw)
		return nil, nil, err
	}
	closed := false
	closeFn = func() error {
		if closed {
			return nil
		}
		closed = true
		return unix.Munmap(raw)
	}
	return raw, closeFn, nil
}
