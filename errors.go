// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import "errors"

var (
	// ErrInvalidArgument reports a nil buffer, a negative offset/count, or
	// offset+count exceeding the supplied buffer on stream I/O.
	ErrInvalidArgument = errors.New("shmchan: invalid argument")

	// ErrOperationNotSupported reports seek, set-length, length/position
	// queries, or using a stream in the direction it was not built for.
	ErrOperationNotSupported = errors.New("shmchan: operation not supported")

	// ErrUsedAfterRelease reports an operation attempted on a disposed
	// Sender or Receiver.
	ErrUsedAfterRelease = errors.New("shmchan: used after release")

	// ErrConcurrentUse reports that two goroutines attempted to drive the
	// same Sender's SendMessage, or the same Receiver's ReceiveMessage,
	// concurrently. Each peer is single-threaded by design; this module
	// fails fast rather than leaving the race undefined.
	ErrConcurrentUse = errors.New("shmchan: concurrent use of the same sender or receiver")

	// ErrFramingMismatch reports that the two peers observed different
	// system page sizes, so the window size W disagrees between them. Not
	// recoverable; both peers must be torn down.
	ErrFramingMismatch = errors.New("shmchan: peer page size mismatch")

	// ErrTooLong reports a chunk length outside [0, window size], which can
	// only happen if a peer is misbehaving or ErrFramingMismatch applies.
	ErrTooLong = errors.New("shmchan: chunk length exceeds window size")
)
