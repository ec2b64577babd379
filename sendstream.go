// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// SendStream is the write-only, non-seekable byte sink handed to a Sender's
// user callback. It implements io.Writer; it deliberately does not implement
// io.Reader, io.Seeker, or anything exposing a length/position, so "read on a
// write stream" and "seek" are rejected at compile time rather than at
// runtime.
type SendStream struct {
	page       *sharedPage
	events     *eventSet
	retryDelay time.Duration
	limiter    *rate.Limiter
	metrics    *Metrics

	pos uint32 // bytes staged in the window but not yet flushed
}

func newSendStream(page *sharedPage, events *eventSet, o *Options) *SendStream {
	s := &SendStream{page: page, events: events, retryDelay: o.RetryDelay, metrics: o.Metrics}
	if o.RateLimitBytesPerSec > 0 {
		burst := int(o.RateLimitBytesPerSec)
		if burst > page.windowSize() {
			burst = page.windowSize()
		}
		s.limiter = rate.NewLimiter(rate.Limit(o.RateLimitBytesPerSec), burst)
	}
	return s
}

// Write copies bytes into the shared window, flushing a full chunk (signalling
// BytesWritten and waiting for BytesRead) whenever the window fills. It never
// emits a zero-length chunk mid-message.
func (s *SendStream) Write(p []byte) (n int, err error) {
	data := s.page.data()
	w := s.page.windowSize()
	for len(p) > 0 {
		room := w - int(s.pos)
		k := len(p)
		if k > room {
			k = room
		}
		copy(data[s.pos:int(s.pos)+k], p[:k])
		s.pos += uint32(k)
		n += k
		p = p[k:]

		if int(s.pos) == w {
			if err := s.flushFullChunk(); err != nil {
				return n, err
			}
		}
	}
	if s.metrics != nil && n > 0 {
		s.metrics.BytesTransferred.Add(float64(n))
	}
	return n, nil
}

// Flush is a no-op: every chunk flush is driven by window fullness, not by an
// explicit flush call.
func (s *SendStream) Flush() error { return nil }

// Close is inert on the stream itself; the enclosing Sender emits the final
// completion chunk.
func (s *SendStream) Close() error { return nil }

// flushFullChunk publishes a non-final, full-window chunk: the header is
// published before BytesWritten is signalled (release-before-signal), and the
// stream then waits for BytesRead before the window may be reused.
func (s *SendStream) flushFullChunk() error {
	if s.limiter != nil {
		// WaitN rejects requests larger than the burst, so a full window is
		// paid for in burst-sized pieces.
		for left := int(s.pos); left > 0; {
			k := left
			if b := s.limiter.Burst(); k > b {
				k = b
			}
			if err := s.limiter.WaitN(context.Background(), k); err != nil {
				return err
			}
			left -= k
		}
	}
	s.page.publishHeader(s.pos, false)
	if err := s.events.written.Signal(); err != nil {
		return err
	}
	if err := waitEvent(s.events.consumed, s.retryDelay); err != nil {
		return err
	}
	s.pos = 0
	return nil
}
