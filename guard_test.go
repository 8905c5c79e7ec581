package iokit

import (
	"errors"
	"testing"
)

func TestGuard(t *testing.T) {
	t.Run("opens and closes", func(t *testing.T) {
		f := NewFile(newStream(map[string][]byte{"a": {1}}), "a")
		g, err := NewGuard(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.IsOpen() || f.Mode() != ModeRead {
			t.Error("expected file open for reading")
		}
		if g.Resource() != Resource(f) {
			t.Error("expected guard to hold the file")
		}
		g.Release()
		g.Release()
		if f.IsOpen() {
			t.Error("expected file closed after release")
		}
	})

	t.Run("second guard over same resource fails", func(t *testing.T) {
		f := NewFile(newStream(map[string][]byte{"a": {1}}), "a")
		g, err := NewGuard(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer g.Release()

		if _, err := NewGuard(f); !IsInvalidState(err) {
			t.Errorf("expected ErrInvalidState, got %v", err)
		}
		if !f.IsOpen() {
			t.Error("expected first guard to keep the file open")
		}
	})

	t.Run("nil guard release is a no-op", func(t *testing.T) {
		var g *Guard
		g.Release()
	})
}

func TestWithOpen(t *testing.T) {
	t.Run("closes after error", func(t *testing.T) {
		f := NewFile(newStream(map[string][]byte{"a": {1}}), "a")
		want := errors.New("boom")
		err := WithOpen(f, ModeRead, func(Resource) error { return want })
		if !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
		if f.IsOpen() {
			t.Error("expected file closed")
		}
	})

	t.Run("closes on panic", func(t *testing.T) {
		f := NewFile(newStream(map[string][]byte{"a": {1}}), "a")
		func() {
			defer func() {
				if recover() == nil {
					t.Error("expected panic to propagate")
				}
			}()
			_ = WithOpen(f, ModeRead, func(Resource) error { panic("boom") })
		}()
		if f.IsOpen() {
			t.Error("expected file closed after panic")
		}
	})
}
