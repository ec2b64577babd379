// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"errors"
	"testing"
)

// TestReceiveStreamRejectsOversizedChunk covers a chunk header claiming more
// bytes than this peer's window holds, which can only happen if the two
// peers observed different system page sizes.
func TestReceiveStreamRejectsOversizedChunk(t *testing.T) {
	raw := make([]byte, 16) // window size 10
	page := newSharedPage(raw)
	page.publishHeader(11, false)

	events := &eventSet{written: alwaysSignalled{}, consumed: alwaysSignalled{}}
	rs := newReceiveStream(page, events, &Options{RetryDelay: -1})

	buf := make([]byte, 4)
	_, err := rs.Read(buf)
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("Read() error = %v, want ErrTooLong", err)
	}
}

// alwaysSignalled is a crossEvent stub whose Wait/TryWait return immediately
// without touching any OS primitive, used to drive ReceiveStream in isolation
// from the real named-event backends.
type alwaysSignalled struct{}

func (alwaysSignalled) Signal() error  { return nil }
func (alwaysSignalled) Wait() error    { return nil }
func (alwaysSignalled) TryWait() error { return nil }
func (alwaysSignalled) Close() error   { return nil }
