package iokit_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/gobeaver/iokit"
	"github.com/gobeaver/iokit/driver/memory"
)

func TestReader(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 1000)
	r := memory.NewReadOnlyView(data)
	if err := r.Open(); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(iokit.NewReader(r))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("read %d bytes, want %d", len(got), len(data))
	}
}

func TestWriter(t *testing.T) {
	view := memory.NewView(make([]byte, 4))
	if err := view.Open(iokit.ModeWrite); err != nil {
		t.Fatal(err)
	}
	defer view.Close()

	n, err := iokit.NewWriter(view).Write([]byte("abcdef"))
	if err != io.ErrShortWrite {
		t.Errorf("expected io.ErrShortWrite, got %v", err)
	}
	if n != 4 || string(view.Bytes()) != "abcd" {
		t.Errorf("wrote %d bytes, view = %q", n, view.Bytes())
	}
}

func TestCopy(t *testing.T) {
	src := memory.NewStringView("copied between resources")
	dst := memory.NewBuffer()

	n, err := iokit.Copy(dst, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len("copied between resources")) {
		t.Errorf("Copy() = %d", n)
	}
	if string(dst.Bytes()) != "copied between resources" {
		t.Errorf("dst = %q", dst.Bytes())
	}
	if src.IsOpen() || dst.IsOpen() {
		t.Error("expected both resources closed")
	}
}
