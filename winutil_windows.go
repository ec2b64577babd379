// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package shmchan

import (
	"path/filepath"
	"unsafe"
)

// winObjectName reduces a filesystem-flavored key (produced by regionKey or
// eventKey, which embed baseDir for the Unix backend) to the Win32 kernel
// object namespace's flat name: its base name only.
func winObjectName(key string) string {
	return filepath.Base(key)
}

// unsafeSlice views size bytes starting at addr as a []byte. addr comes from
// MapViewOfFile and stays valid until UnmapViewOfFile is called.
func unsafeSlice(addr uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}
