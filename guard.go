package iokit

import "fmt"

// Guard keeps a resource open for a scope and closes it on Release.
//
//	g, err := iokit.NewGuard(r, iokit.ModeRead)
//	if err != nil {
//	    return err
//	}
//	defer g.Release()
type Guard struct {
	r        Resource
	released bool
}

// NewGuard opens r in mode (read when omitted). It fails with ErrInvalidState
// if r is already open.
func NewGuard(r Resource, mode ...Mode) (*Guard, error) {
	if r.IsOpen() {
		return nil, NewPathError("guard", r.Path(), fmt.Errorf("%w: already open", ErrInvalidState))
	}
	if err := r.Open(mode...); err != nil {
		return nil, err
	}
	return &Guard{r: r}, nil
}

// Resource returns the guarded resource.
func (g *Guard) Resource() Resource {
	return g.r
}

// Release closes the resource. Further calls do nothing.
func (g *Guard) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.r.Close()
}

// WithOpen runs fn with r open in mode and closes r afterwards, also when fn
// panics.
func WithOpen(r Resource, mode Mode, fn func(Resource) error) error {
	g, err := NewGuard(r, mode)
	if err != nil {
		return err
	}
	defer g.Release()
	return fn(r)
}
