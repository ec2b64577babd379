// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package shmchan

import (
	"errors"

	"golang.org/x/sys/windows"

	"code.hybscloud.com/iox"
)

// win32Event backs one named cross-process auto-reset event with a Win32
// named event object: manualReset=0 requests auto-reset semantics directly
// from the OS, with no userspace bookkeeping needed to make a signal wake
// exactly one waiter and then re-arm.
type win32Event struct {
	h windows.Handle
}

func openNamedEvent(name string) (crossEvent, error) {
	objName, err := windows.UTF16PtrFromString(winObjectName(name))
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateEvent(nil, 0 /* auto-reset */, 0 /* initially unsignalled */, objName)
	if err != nil && !errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		return nil, err
	}
	return &win32Event{h: h}, nil
}

func (e *win32Event) Signal() error {
	return windows.SetEvent(e.h)
}

func (e *win32Event) Wait() error {
	_, err := windows.WaitForSingleObject(e.h, windows.INFINITE)
	return err
}

// TryWait polls with a zero timeout, surfacing iox.ErrWouldBlock when the
// event has not been signalled, matching the Unix backend's TryWait contract.
func (e *win32Event) TryWait() error {
	s, err := windows.WaitForSingleObject(e.h, 0)
	if err != nil {
		return err
	}
	if s == uint32(windows.WAIT_TIMEOUT) {
		return iox.ErrWouldBlock
	}
	return nil
}

func (e *win32Event) Close() error {
	return windows.CloseHandle(e.h)
}
