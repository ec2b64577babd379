// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import "testing"

func TestSharedPageHeaderRoundTrip(t *testing.T) {
	raw := make([]byte, 4096)
	p := newSharedPage(raw)

	if got := p.windowSize(); got != len(raw)-headerLen {
		t.Fatalf("windowSize() = %d, want %d", got, len(raw)-headerLen)
	}

	p.publishHeader(1234, false)
	bw, completed := p.readHeader()
	if bw != 1234 || completed {
		t.Fatalf("readHeader() = (%d, %v), want (1234, false)", bw, completed)
	}

	p.publishHeader(0, true)
	bw, completed = p.readHeader()
	if bw != 0 || !completed {
		t.Fatalf("readHeader() = (%d, %v), want (0, true)", bw, completed)
	}
}

func TestSharedPageDataExcludesHeader(t *testing.T) {
	raw := make([]byte, 16)
	p := newSharedPage(raw)
	data := p.data()
	if len(data) != len(raw)-headerLen {
		t.Fatalf("data() length = %d, want %d", len(data), len(raw)-headerLen)
	}
	data[0] = 0xff
	if raw[headerLen] != 0xff {
		t.Fatalf("data() is not a view over raw past the header")
	}
}
