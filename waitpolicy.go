// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"runtime"
	"time"

	"code.hybscloud.com/iox"
)

// waitEvent resolves one named event's Options.RetryDelay into a concrete
// wait strategy: a true OS-level block, or a TryWait poll loop yielding
// between attempts via runtime.Gosched or time.Sleep.
func waitEvent(ev crossEvent, retryDelay time.Duration) error {
	if retryDelay < 0 {
		return ev.Wait()
	}
	for {
		err := ev.TryWait()
		if err == nil {
			return nil
		}
		if err != iox.ErrWouldBlock {
			return err
		}
		if retryDelay == 0 {
			runtime.Gosched()
			continue
		}
		time.Sleep(retryDelay)
	}
}
