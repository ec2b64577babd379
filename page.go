// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import "encoding/binary"

// Shared page layout:
//
//	offset 0, 4 bytes : bytesWritten (little-endian uint32)
//	offset 4, 1 byte  : messageCompleted (non-zero iff final chunk)
//	offset 5, 1 byte  : reserved, always zero
//	offset 6, W bytes : data, W = page size - headerLen
const (
	headerLen             = 6
	headerBytesWrittenOff = 0
	headerCompletedOff    = 4
	headerReservedOff     = 5
)

// sharedPage is a typed view over the raw bytes of one system page. The two
// header fields and the data window are ordinary memory accesses: the
// happens-before edge that makes this safe without locks comes entirely from
// the event signal/wait pair surrounding each chunk hand-off, not from
// atomics on the fields themselves.
type sharedPage struct {
	raw []byte // exactly one system page
}

func newSharedPage(raw []byte) *sharedPage {
	return &sharedPage{raw: raw}
}

func (p *sharedPage) windowSize() int { return len(p.raw) - headerLen }

func (p *sharedPage) data() []byte { return p.raw[headerLen:] }

func (p *sharedPage) loadBytesWritten() uint32 {
	return binary.LittleEndian.Uint32(p.raw[headerBytesWrittenOff : headerBytesWrittenOff+4])
}

func (p *sharedPage) storeBytesWritten(n uint32) {
	binary.LittleEndian.PutUint32(p.raw[headerBytesWrittenOff:headerBytesWrittenOff+4], n)
}

func (p *sharedPage) loadCompleted() bool {
	return p.raw[headerCompletedOff] != 0
}

func (p *sharedPage) storeCompleted(v bool) {
	if v {
		p.raw[headerCompletedOff] = 1
	} else {
		p.raw[headerCompletedOff] = 0
	}
}

// publishHeader writes both header fields and the reserved byte in one call.
// The header must be published before the corresponding event is signalled;
// callers must call this, then signal, never the reverse.
func (p *sharedPage) publishHeader(bytesWritten uint32, completed bool) {
	p.storeBytesWritten(bytesWritten)
	p.storeCompleted(completed)
	p.raw[headerReservedOff] = 0
}

// readHeader reads both header fields. Callers must only call this after a
// successful wait on the corresponding event (the acquire side of the
// release/acquire edge the event establishes).
func (p *sharedPage) readHeader() (bytesWritten uint32, completed bool) {
	return p.loadBytesWritten(), p.loadCompleted()
}
