// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !windows

package shmchan

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/iox"
)

// fifoEvent backs one named cross-process auto-reset event with a named FIFO:
// Signal writes a single byte, Wait/TryWait consume a single byte. Two
// independent signals queued ahead of one waiter are absorbed one at a time
// by successive waits, which is all the auto-reset "no accumulation beyond
// one pending signal per wait" contract needs to hold: the protocol never
// signals the same event twice before the corresponding wait consumes it.
//
// The FIFO is opened O_RDWR by both peers rather than O_WRONLY/O_RDONLY. A
// FIFO opened for one direction blocks until a peer opens the other end,
// which would deadlock two independently-constructed Sender/Receiver objects
// racing to open their four events. Opening O_RDWR sidesteps that rendezvous
// entirely (a well known Linux extension to keep a FIFO open with no peer).
type fifoEvent struct {
	path string
	f    *os.File
}

func openNamedEvent(path string) (crossEvent, error) {
	if err := unix.Mkfifo(path, 0o600); err != nil && !errors.Is(err, unix.EEXIST) {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	return &fifoEvent{path: path, f: f}, nil
}

func (e *fifoEvent) Signal() error {
	var b [1]byte
	_, err := e.f.Write(b[:])
	return err
}

// Wait blocks until a byte is available, consuming exactly one.
func (e *fifoEvent) Wait() error {
	var b [1]byte
	for {
		n, err := e.f.Read(b[:])
		if n == 1 {
			return nil
		}
		if err != nil {
			return err
		}
		// n==0, err==nil: retry the read. A zero-length FIFO read with no
		// error does not happen in practice.
	}
}

// TryWait consumes one pending byte if available, otherwise returns
// iox.ErrWouldBlock immediately: setting a read deadline already in the past
// forces the read to fail fast instead of parking.
func (e *fifoEvent) TryWait() error {
	if err := e.f.SetReadDeadline(time.Now()); err != nil {
		return err
	}
	defer e.f.SetReadDeadline(time.Time{})

	var b [1]byte
	n, err := e.f.Read(b[:])
	if n == 1 {
		return nil
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return iox.ErrWouldBlock
	}
	if err != nil {
		return err
	}
	return iox.ErrWouldBlock
}

func (e *fifoEvent) Close() error {
	return e.f.Close()
}
