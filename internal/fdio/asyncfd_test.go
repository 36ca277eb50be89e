// File: internal/fdio/asyncfd_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// AsyncFD suspension semantics driven through the fake reactor: no
// kernel poller involved, readiness is delivered by hand.

package fdio_test

import (
	"io"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/streamrelay/api"
	"github.com/momentics/streamrelay/fake"
	"github.com/momentics/streamrelay/internal/fdio"
)

func nonblockPipe(t *testing.T) (int, int) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	for _, fd := range fds {
		if err := fdio.SetNonblocking(fd, true); err != nil {
			t.Fatalf("set nonblocking: %v", err)
		}
	}
	t.Cleanup(func() {
		_ = unix.Close(fds[0])
		_ = unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestReadSuspendsUntilReadiness(t *testing.T) {
	rfd, wfd := nonblockPipe(t)
	r := fake.NewReactor()

	afd, err := fdio.NewAsyncFD(rfd, r, false)
	if err != nil {
		t.Fatalf("NewAsyncFD: %v", err)
	}
	defer afd.Close()
	if !r.Registered(uintptr(rfd)) {
		t.Fatal("fd not registered with reactor")
	}

	type result struct {
		n   int
		err error
		buf [8]byte
	}
	done := make(chan *result, 1)
	go func() {
		res := &result{}
		res.n, res.err = afd.Read(res.buf[:])
		done <- res
	}()

	// Empty pipe: the read must stay suspended.
	select {
	case res := <-done:
		t.Fatalf("read returned early: n=%d err=%v", res.n, res.err)
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := unix.Write(wfd, []byte("ping")); err != nil {
		t.Fatalf("pipe write: %v", err)
	}
	r.Fire(uintptr(rfd), api.Readable)

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("read error: %v", res.err)
		}
		if string(res.buf[:res.n]) != "ping" {
			t.Fatalf("read %q, want %q", res.buf[:res.n], "ping")
		}
	case <-time.After(time.Second):
		t.Fatal("read did not wake after readiness")
	}
}

func TestReadEOFOnClosedWriteEnd(t *testing.T) {
	rfd, wfd := nonblockPipe(t)
	r := fake.NewReactor()

	afd, err := fdio.NewAsyncFD(rfd, r, false)
	if err != nil {
		t.Fatalf("NewAsyncFD: %v", err)
	}
	defer afd.Close()

	_ = unix.Close(wfd)

	var buf [4]byte
	if _, err := afd.Read(buf[:]); err != io.EOF {
		t.Fatalf("read on drained pipe = %v, want io.EOF", err)
	}
}

func TestCloseWakesSuspendedReader(t *testing.T) {
	rfd, _ := nonblockPipe(t)
	r := fake.NewReactor()

	afd, err := fdio.NewAsyncFD(rfd, r, false)
	if err != nil {
		t.Fatalf("NewAsyncFD: %v", err)
	}

	errc := make(chan error, 1)
	go func() {
		var buf [4]byte
		_, err := afd.Read(buf[:])
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if err := afd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.Registered(uintptr(rfd)) {
		t.Fatal("fd still registered after close")
	}

	select {
	case err := <-errc:
		if err != api.ErrHalfClosed {
			t.Fatalf("read after close = %v, want ErrHalfClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("close did not wake suspended reader")
	}
}

func TestRegisterEPERMDowngradesToAlwaysReady(t *testing.T) {
	// The kernel refuses to poll regular files; AsyncFD must fall back
	// to direct non-blocking I/O without a reactor registration.
	r := fake.NewReactor()
	r.SetRegisterErr(unix.EPERM)

	f, err := unix.Open("/dev/null", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("open /dev/null: %v", err)
	}
	if err := fdio.SetNonblocking(f, true); err != nil {
		t.Fatalf("set nonblocking: %v", err)
	}

	afd, err := fdio.NewAsyncFD(f, r, true)
	if err != nil {
		t.Fatalf("NewAsyncFD with EPERM = %v, want downgrade", err)
	}
	if r.Registered(uintptr(f)) {
		t.Fatal("downgraded fd must not be registered")
	}

	if _, err := afd.Write([]byte("discard")); err != nil {
		t.Fatalf("write to always-ready fd: %v", err)
	}
	if err := afd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRegisterFailurePropagates(t *testing.T) {
	rfd, _ := nonblockPipe(t)
	r := fake.NewReactor()
	r.SetRegisterErr(unix.EBADF)

	if _, err := fdio.NewAsyncFD(rfd, r, false); err == nil {
		t.Fatal("NewAsyncFD should propagate non-EPERM registration errors")
	}
}
