// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package shmchan

import (
	"golang.org/x/sys/windows"
)

// mapNamedPage create-or-opens a named, pagefile-backed file mapping and maps
// a view of it. Windows kernel objects (file mappings, events) live in a
// single global namespace keyed by name, not by filesystem path, so the
// filesystem-flavored key produced by regionKey is reduced to its base name
// here.
func mapNamedPage(key string, size int) (raw []byte, closeFn func() error, err error) {
	name, err := windows.UTF16PtrFromString(winObjectName(key))
	if err != nil {
		return nil, nil, err
	}
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(size), name)
	if err != nil {
		return nil, nil, err
	}
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, nil, err
	}
	raw = unsafeSlice(addr, size)
	closed := false
	closeFn = func() error {
		if closed {
			return nil
		}
		closed = true
		if err := windows.UnmapViewOfFile(addr); err != nil {
			return err
		}
		return windows.CloseHandle(h)
	}
	return raw, closeFn, nil
}
