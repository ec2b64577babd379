// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Receiver is the read side of a channel identified by name. Like Sender, a
// Receiver must not be driven by more than one goroutine at a time;
// ReceiveMessage and TryReceiveMessage reject concurrent use rather than
// leaving it undefined.
type Receiver struct {
	region *region
	events *eventSet
	opts   Options

	busy   atomic.Bool
	closed atomic.Bool
}

// NewReceiver create-or-opens the shared region and named events for name.
func NewReceiver(name string, opts ...Option) (*Receiver, error) {
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
	o.logf("shmchan: receiver %q opened", name)
	return &Receiver{region: reg, events: ev, opts: o}, nil
}

// ReceiveMessage waits for the next message, hands a ReceiveStream to fn, and
// acknowledges the message once fn returns. Because Go has no generic
// methods, ReceiveMessage is a package-level function parameterized by fn's
// result type.
//
// If the channel is closed (via Receiver.Close) while ReceiveMessage is
// waiting for a message to begin, it returns the zero value of T and a nil
// error without touching the shared region.
//
// If fn returns a non-nil error, ReceiveMessage does not signal MessageRead:
// the channel is left unusable for any subsequent SendMessage on the peer,
// which will block forever waiting for the acknowledgement that never comes.
// This is a deliberate choice, not an oversight: a callback that fails
// partway through a message leaves the shared window in a state no
// recovery can safely resume from, so both peers must be torn down.
func ReceiveMessage[T any](r *Receiver, fn func(*ReceiveStream) (T, error)) (T, error) {
	var zero T
	if r.closed.Load() {
		return zero, ErrUsedAfterRelease
	}
	if !r.busy.CompareAndSwap(false, true) {
		return zero, ErrConcurrentUse
	}
	defer r.busy.Store(false)

	disposed, err := r.events.waitSendingOrDisposing()
	if err != nil {
		return zero, err
	}
	if disposed {
		return zero, nil
	}
	return runReceive(r, fn)
}

// TryReceiveMessage is the non-blocking counterpart to ReceiveMessage: if no
// message has begun yet, it returns the zero value of T and iox.ErrWouldBlock
// instead of waiting.
func TryReceiveMessage[T any](r *Receiver, fn func(*ReceiveStream) (T, error)) (T, error) {
	var zero T
	if r.closed.Load() {
		return zero, ErrUsedAfterRelease
	}
	select {
	case <-r.events.disposing:
		return zero, nil
	default:
	}
	if !r.busy.CompareAndSwap(false, true) {
		return zero, ErrConcurrentUse
	}
	defer r.busy.Store(false)

	if err := r.events.sending.TryWait(); err != nil {
		return zero, err
	}
	return runReceive(r, fn)
}

// runReceive drives fn once MessageSending has already been observed.
func runReceive[T any](r *Receiver, fn func(*ReceiveStream) (T, error)) (T, error) {
	var zero T
	stream := newReceiveStream(r.region.page, r.events, &r.opts)
	result, cbErr := fn(stream)
	if cbErr != nil {
		if r.opts.Metrics != nil {
			r.opts.Metrics.MessagesAborted.Inc()
		}
		return zero, errors.Wrap(cbErr, "shmchan: receiver callback aborted message")
	}
	if err := r.events.read.Signal(); err != nil {
		return zero, err
	}
	if r.opts.Metrics != nil {
		r.opts.Metrics.MessagesReceived.Inc()
	}
	return result, nil
}

// Close releases the Receiver's handles and wakes any goroutine blocked in
// ReceiveMessage waiting for a message to begin. Safe to call more than once.
func (r *Receiver) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.opts.logf("shmchan: receiver closing")
	r.events.dispose()
	err1 := r.events.Close()
	err2 := r.region.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
