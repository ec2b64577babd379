// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Sender is the write side of a channel identified by name. A Sender owns its
// shared-region and event-set handles for its whole lifetime; SendMessage may
// be called any number of times to send successive messages.
//
// A Sender must not be driven by more than one goroutine at a time;
// SendMessage detects and rejects concurrent use rather than leaving it
// undefined.
type Sender struct {
	region *region
	events *eventSet
	opts   Options

	busy   atomic.Bool
	closed atomic.Bool
}

// NewSender create-or-opens the shared region and named events for name.
func NewSender(name string, opts ...Option) (*Sender, error) {
	o := resolveOptions(opts)
	reg, err := openRegion(name, o.BaseDir)
	if err != nil {
		return nil, err
	}
	ev, err := openEventSet(name, o.BaseDir)
	if err != nil {
		_ = reg.Close()
		return nil, err
	}
	o.logf("shmchan: sender %q opened", name)
	return &Sender{region: reg, events: ev, opts: o}, nil
}

// SendMessage begins a new message, hands a SendStream to fn, and finalizes
// the message once fn returns.
//
// If fn returns a non-nil error, SendMessage publishes the cancellation
// encoding (an empty final chunk), still waits for MessageRead, and then
// re-raises fn's error (wrapped for provenance). Bytes still staged in the
// window are discarded, so a message aborted before its first full chunk is
// flushed arrives as an empty payload; full chunks flushed before the failure
// have already been delivered and are not retracted, so the receiver sees
// those bytes followed by end of message.
func (s *Sender) SendMessage(fn func(*SendStream) error) error {
	if s.closed.Load() {
		return ErrUsedAfterRelease
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrConcurrentUse
	}
	defer s.busy.Store(false)

	if err := s.events.sending.Signal(); err != nil {
		return err
	}

	stream := newSendStream(s.region.page, s.events, &s.opts)
	cbErr := fn(stream)

	if cbErr != nil {
		s.region.page.publishHeader(0, true)
		if err := s.events.written.Signal(); err != nil {
			return err
		}
		if err := waitEvent(s.events.read, s.opts.RetryDelay); err != nil {
			return err
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.MessagesAborted.Inc()
		}
		return errors.Wrap(cbErr, "shmchan: sender callback aborted message")
	}

	s.region.page.publishHeader(stream.pos, true)
	if err := s.events.written.Signal(); err != nil {
		return err
	}
	if err := waitEvent(s.events.read, s.opts.RetryDelay); err != nil {
		return err
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.MessagesSent.Inc()
	}
	return nil
}

// Close releases the Sender's handles. Safe to call more than once.
func (s *Sender) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.opts.logf("shmchan: sender closing")
	err1 := s.events.Close()
	err2 := s.region.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
