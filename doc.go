// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shmchan provides a one-way, in-order byte-stream message channel
// between two cooperating processes on a single host, carried over a shared
// memory page and synchronized by four named, auto-reset, cross-process
// events plus a process-local cancellation signal.
//
// Semantics and design:
//   - Chunked hand-off: a message of unbounded length is transported through a
//     single fixed-size shared window (one system page minus a small header).
//     Ownership of the window alternates strictly between sender and receiver;
//     no locks are used, only the alternation of four auto-reset events.
//   - Message boundaries are preserved: one SendMessage call transports exactly
//     one message, regardless of how many Write calls the caller makes; one
//     ReceiveMessage call consumes exactly one message, signalled by Read
//     returning 0.
//   - Non-blocking first (advanced/optional): the four named events expose a
//     blocking Wait (the default) and a TryWait that surfaces
//     code.hybscloud.com/iox's ErrWouldBlock as a control-flow signal for
//     callers integrating the channel into their own poll loop.
//
// Wire format of the shared page: a 6-byte header (4-byte little-endian
// bytesWritten, 1-byte messageCompleted, 1 reserved zero byte) followed by a
// data window of pageSize-6 bytes. Both peers must observe the same system
// page size or the channel is unusable (see ErrFramingMismatch).
//
// Event names: the four cross-process events are named by appending
// "_MessageSending", "_MessageRead", "_BytesWritten", "_BytesRead" to the
// channel's base name. These suffixes are the wire contract between peers and
// must not change.
package shmchan
