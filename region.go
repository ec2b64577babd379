// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"fmt"
	"os"
)

// region owns the mapped shared page for a channel name. Both peers
// create-or-open the same region by name; it stays mapped for the lifetime of
// the owning Sender/Receiver.
type region struct {
	page  *sharedPage
	close func() error
}

// openRegion maps (creating if necessary) the one-system-page shared region
// identified by name under baseDir, sized to this process's system page.
// It returns ErrFramingMismatch only if the local mapping is not exactly one
// page long; it does not compare page sizes with the peer. A peer with a
// larger page shows up later as ErrTooLong from ReceiveStream.Read.
func openRegion(name, baseDir string) (*region, error) {
	size := os.Getpagesize()
	if size <= headerLen {
		return nil, fmt.Errorf("shmchan: system page size %d too small", size)
	}
	raw, closeFn, err := mapNamedPage(regionKey(name, baseDir), size)
	if err != nil {
		return nil, err
	}
	if len(raw) != size {
		_ = closeFn()
		return nil, ErrFramingMismatch
	}
	return &region{page: newSharedPage(raw), close: closeFn}, nil
}

func (r *region) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}
