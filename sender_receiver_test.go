// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	sc "code.hybscloud.com/shmchan"
)

func newPair(t *testing.T, name string) (*sc.Sender, *sc.Receiver) {
	t.Helper()
	dir := t.TempDir()
	sender, err := sc.NewSender(name, sc.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	t.Cleanup(func() { sender.Close() })
	receiver, err := sc.NewReceiver(name, sc.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	t.Cleanup(func() { receiver.Close() })
	return sender, receiver
}

func TestTwoMessagesInOrder(t *testing.T) {
	sender, receiver := newPair(t, "chan0")

	messages := [][]byte{[]byte("hello"), []byte("world")}
	done := make(chan error, 1)
	go func() {
		for _, m := range messages {
			if err := sender.SendMessage(func(w *sc.SendStream) error {
				_, err := w.Write(m)
				return err
			}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i, want := range messages {
		got, err := sc.ReceiveMessage(receiver, func(r *sc.ReceiveStream) ([]byte, error) {
			return io.ReadAll(r)
		})
		if err != nil {
			t.Fatalf("message %d: ReceiveMessage: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("message %d: got %q, want %q", i, got, want)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("sender goroutine: %v", err)
	}
}

func TestLargeMessageSpansMultipleChunks(t *testing.T) {
	sender, receiver := newPair(t, "chan1")

	payload := bytes.Repeat([]byte("0123456789abcdef"), os.Getpagesize()*5/32) // 2.5 pages: two full chunks plus a partial final chunk on any page size
	done := make(chan error, 1)
	go func() {
		done <- sender.SendMessage(func(w *sc.SendStream) error {
			_, err := w.Write(payload)
			return err
		})
	}()

	got, err := sc.ReceiveMessage(receiver, func(r *sc.ReceiveStream) ([]byte, error) {
		return io.ReadAll(r)
	})
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %d bytes, want %d bytes matching payload", len(got), len(payload))
	}
	if err := <-done; err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
}

func TestEmptyMessage(t *testing.T) {
	sender, receiver := newPair(t, "chan2")

	done := make(chan error, 1)
	go func() {
		done <- sender.SendMessage(func(w *sc.SendStream) error { return nil })
	}()

	got, err := sc.ReceiveMessage(receiver, func(r *sc.ReceiveStream) ([]byte, error) {
		return io.ReadAll(r)
	})
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %q, want empty", got)
	}
	if err := <-done; err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
}

func TestCloseWakesIdleReceive(t *testing.T) {
	_, receiver := newPair(t, "chan3")

	done := make(chan struct{})
	go func() {
		defer close(done)
		got, err := sc.ReceiveMessage(receiver, func(r *sc.ReceiveStream) (int, error) {
			t.Errorf("callback should not run when disposed before any message begins")
			return 0, nil
		})
		if err != nil {
			t.Errorf("ReceiveMessage after Close: %v", err)
		}
		if got != 0 {
			t.Errorf("ReceiveMessage after Close returned %d, want zero value", got)
		}
	}()

	time.Sleep(20 * time.Millisecond) // let the goroutine reach its blocking wait
	if err := receiver.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReceiveMessage did not wake up after Close")
	}
}

func TestSenderAbortDeliversEmptyMessage(t *testing.T) {
	sender, receiver := newPair(t, "chan4")

	sentinel := errors.New("boom")
	done := make(chan error, 1)
	go func() {
		done <- sender.SendMessage(func(w *sc.SendStream) error {
			_, _ = w.Write([]byte("partial"))
			return sentinel
		})
	}()

	got, err := sc.ReceiveMessage(receiver, func(r *sc.ReceiveStream) ([]byte, error) {
		return io.ReadAll(r)
	})
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %q, want empty message on sender abort", got)
	}

	sendErr := <-done
	if sendErr == nil {
		t.Fatal("SendMessage should re-raise the callback error")
	}
	if !errors.Is(sendErr, sentinel) {
		t.Fatalf("SendMessage error %v does not wrap sentinel %v", sendErr, sentinel)
	}
}

func TestReceiverAbortLeavesChannelUnusable(t *testing.T) {
	sender, receiver := newPair(t, "chan5")

	sentinel := errors.New("bad payload")
	sendDone := make(chan error, 1)
	go func() {
		sendDone <- sender.SendMessage(func(w *sc.SendStream) error {
			_, err := w.Write([]byte("hi"))
			return err
		})
	}()

	_, recvErr := sc.ReceiveMessage(receiver, func(r *sc.ReceiveStream) (int, error) {
		_, _ = io.ReadAll(r)
		return 0, sentinel
	})
	if recvErr == nil {
		t.Fatal("ReceiveMessage should re-raise the callback error")
	}
	if !errors.Is(recvErr, sentinel) {
		t.Fatalf("ReceiveMessage error %v does not wrap sentinel %v", recvErr, sentinel)
	}

	// MessageRead was never signalled, so the in-flight SendMessage must still
	// be blocked waiting for it.
	select {
	case err := <-sendDone:
		t.Fatalf("SendMessage returned (%v) after a failed receive; it should still be blocked", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConcurrentSendMessageRejected(t *testing.T) {
	sender, _ := newPair(t, "chan6")

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = sender.SendMessage(func(w *sc.SendStream) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	if err := sender.SendMessage(func(w *sc.SendStream) error { return nil }); !errors.Is(err, sc.ErrConcurrentUse) {
		t.Fatalf("concurrent SendMessage = %v, want ErrConcurrentUse", err)
	}
	close(release)
}

func TestSendMessageAfterCloseFails(t *testing.T) {
	sender, _ := newPair(t, "chan7")
	if err := sender.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	err := sender.SendMessage(func(w *sc.SendStream) error { return nil })
	if !errors.Is(err, sc.ErrUsedAfterRelease) {
		t.Fatalf("SendMessage after Close = %v, want ErrUsedAfterRelease", err)
	}
	if err := sender.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
}
