// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"log"
	"os"
	"time"
)

// Options configures a Sender or Receiver: a package-level default literal
// plus named constructor helpers that set one field each.
type Options struct {
	// BaseDir is the directory used to back the shared page and, on Unix,
	// the named FIFO events. Defaults to os.TempDir(). Exists mainly so
	// tests can avoid colliding on a shared /tmp across parallel binaries;
	// on Windows it has no effect (kernel objects are named, not pathed).
	BaseDir string

	// RetryDelay selects the wait strategy for the MessageRead, BytesWritten
	// and BytesRead waits (ReceiveMessage's wait for MessageSending always
	// uses the blocking Wait, whatever RetryDelay is):
	//   - negative (default): a true OS-level blocking wait.
	//   - zero: cooperative retry — poll with TryWait, runtime.Gosched()
	//     between attempts.
	//   - positive: poll with TryWait, time.Sleep(RetryDelay) between
	//     attempts.
	// The zero/positive modes exist for callers integrating the channel
	// into a poll loop alongside other non-blocking work.
	RetryDelay time.Duration

	// RateLimitBytesPerSec, if positive, caps the rate at which a Sender's
	// SendStream flushes chunks, using a token-bucket limiter (see
	// WithRateLimit).
	RateLimitBytesPerSec int64

	// Logger, if set, receives diagnostic lines for Sender/Receiver
	// construction and disposal only — never the per-message hot path.
	Logger *log.Logger

	// Metrics, if set, receives opt-in counters for messages and bytes
	// transferred (see WithMetrics).
	Metrics *Metrics
}

var defaultOptions = Options{
	BaseDir:    "",
	RetryDelay: -1,
}

// Option configures Options.
type Option func(*Options)

func resolveOptions(opts []Option) Options {
	o := defaultOptions
	if o.BaseDir == "" {
		o.BaseDir = os.TempDir()
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.BaseDir == "" {
		o.BaseDir = os.TempDir()
	}
	return o
}

// WithBaseDir overrides the directory backing the shared page and (on Unix)
// the named event FIFOs.
func WithBaseDir(dir string) Option {
	return func(o *Options) { o.BaseDir = dir }
}

// WithRetryDelay sets the event wait strategy; see Options.RetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock selects cooperative-yield waiting (runtime.Gosched between
// TryWait polls) instead of a true OS-level blocking wait.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithOSBlocking restores the default true OS-level blocking wait.
func WithOSBlocking() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}

// WithRateLimit caps SendMessage's chunk-flush rate to bytesPerSec using a
// token-bucket limiter.
func WithRateLimit(bytesPerSec int64) Option {
	return func(o *Options) { o.RateLimitBytesPerSec = bytesPerSec }
}

// WithLogger attaches a diagnostic logger to Sender/Receiver lifecycle
// events.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics attaches a Metrics collector; see metrics.go.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

func (o *Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
