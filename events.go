// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import "sync"

// crossEvent is one named, auto-reset, cross-process event: a signal releases
// exactly one waiter and atomically returns to the unsignalled state. Wait
// always blocks until signalled or the event is closed. TryWait is the
// non-blocking counterpart: it returns immediately, surfacing
// iox.ErrWouldBlock when nothing has been signalled yet.
type crossEvent interface {
	Signal() error
	Wait() error
	TryWait() error
	Close() error
}

// eventSet owns the four named cross-process events plus a process-local
// cancellation signal used only by the Receiver to unblock its own initial
// wait.
type eventSet struct {
	sending  crossEvent // Sender signals, Receiver awaits
	read     crossEvent // Receiver signals, Sender awaits
	written  crossEvent // Sender signals, Receiver awaits
	consumed crossEvent // Receiver signals, Sender awaits

	disposeOnce sync.Once
	disposing   chan struct{}
}

// openEventSet create-or-opens the four named events for a channel name under
// baseDir. Both Sender and Receiver call this the same way; which side
// signals versus waits on each event is enforced by sender.go/receiver.go, not
// by the event objects themselves.
func openEventSet(name, baseDir string) (*eventSet, error) {
	sending, err := openNamedEvent(eventKey(name, suffixMessageSending, baseDir))
	if err != nil {
		return nil, err
	}
	read, err := openNamedEvent(eventKey(name, suffixMessageRead, baseDir))
	if err != nil {
		_ = sending.Close()
		return nil, err
	}
	written, err := openNamedEvent(eventKey(name, suffixBytesWritten, baseDir))
	if err != nil {
		_ = sending.Close()
		_ = read.Close()
		return nil, err
	}
	consumed, err := openNamedEvent(eventKey(name, suffixBytesRead, baseDir))
	if err != nil {
		_ = sending.Close()
		_ = read.Close()
		_ = written.Close()
		return nil, err
	}
	return &eventSet{
		sending:   sending,
		read:      read,
		written:   written,
		consumed:  consumed,
		disposing: make(chan struct{}),
	}, nil
}

// dispose signals the local cancellation event. Safe to call more than once.
func (e *eventSet) dispose() {
	e.disposeOnce.Do(func() { close(e.disposing) })
}

// Close releases all four named events. Safe to call once; callers (Sender,
// Receiver) guard against double-Close with their own idempotent Close.
func (e *eventSet) Close() error {
	var firstErr error
	for _, ev := range []crossEvent{e.sending, e.read, e.written, e.consumed} {
		if err := ev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// waitSendingOrDisposing waits on the MessageSending event or the local
// Disposing signal, whichever comes first. It reports disposed=true without
// touching the shared region further if Disposing won.
func (e *eventSet) waitSendingOrDisposing() (disposed bool, err error) {
	type result struct{ err error }
	done := make(chan result, 1)
	go func() {
		done <- result{e.sending.Wait()}
	}()
	select {
	case <-e.disposing:
		return true, nil
	case r := <-done:
		return false, r.err
	}
}
