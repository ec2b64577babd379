// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"io"
	"time"
)

// ReceiveStream is the read-only, non-seekable byte source handed to a
// Receiver's user callback. It implements io.Reader only, so "write on a read
// stream" and "seek" fail at compile time rather than at runtime (see
// SendStream's doc comment for the same reasoning).
//
// Read delivers up to len(p) bytes per call and reports end-of-message with
// io.EOF once the current message has been fully consumed.
type ReceiveStream struct {
	page       *sharedPage
	events     *eventSet
	retryDelay time.Duration

	remaining     uint32 // bytes left in the current chunk
	cursor        uint32 // next byte offset within the data window
	finalChunk    bool
	awaitingChunk bool
}

func newReceiveStream(page *sharedPage, events *eventSet, o *Options) *ReceiveStream {
	return &ReceiveStream{page: page, events: events, retryDelay: o.RetryDelay, awaitingChunk: true}
}

// Read waits for the next chunk to arrive when the current one is exhausted,
// copies out up to len(p) bytes, and releases the window back to the sender
// once a non-final chunk is fully drained. It returns io.EOF exactly when the
// message's final chunk has been fully consumed, never before.
func (r *ReceiveStream) Read(p []byte) (int, error) {
	if r.finalChunk && r.remaining == 0 {
		return 0, io.EOF
	}

	if r.awaitingChunk {
		if err := waitEvent(r.events.written, r.retryDelay); err != nil {
			return 0, err
		}
		bw, completed := r.page.readHeader()
		if int(bw) > r.page.windowSize() {
			// The sender published a chunk length that cannot fit the window
			// this peer observed. The only way that happens is the two peers
			// disagreeing on the system page size.
			return 0, ErrTooLong
		}
		r.remaining, r.finalChunk, r.cursor, r.awaitingChunk = bw, completed, 0, false
		if r.remaining == 0 && r.finalChunk {
			// Empty final chunk: the message has no more bytes. The Receiver
			// signals MessageRead once the user callback returns, not here.
			return 0, io.EOF
		}
	}

	k := len(p)
	if uint32(k) > r.remaining {
		k = int(r.remaining)
	}
	data := r.page.data()
	copy(p[:k], data[r.cursor:r.cursor+uint32(k)])
	r.cursor += uint32(k)
	r.remaining -= uint32(k)

	if r.remaining == 0 {
		r.awaitingChunk = true
		if !r.finalChunk {
			// Release the window back to the sender. The final chunk has no
			// corresponding BytesRead wait on the sender side.
			if err := r.events.consumed.Signal(); err != nil {
				return k, err
			}
		}
	}
	return k, nil
}
