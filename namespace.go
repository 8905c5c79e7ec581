package iokit

import (
	"fmt"
	"strings"
)

// Namespace confines a resource under a root path. Its own path is relative
// to root; the inner resource always carries root + path.
//
//	n, err := iokit.NewNamespace(native.New(), "/srv/data/")
//	n.SetPath("a.txt") // inner path is now "/srv/data/a.txt"
//
// Namespace owns the inner resource and releases it on Release.
type Namespace struct {
	*File
	ns *namespaceBackend
}

type namespaceBackend struct {
	forwarder
	root string
}

// NewNamespace wraps inner under root. The current path of inner becomes the
// namespace path and inner is moved to root + path.
func NewNamespace(inner Resource, root string) (*Namespace, error) {
	if inner == nil {
		return nil, NewPathError("namespace", root, fmt.Errorf("%w: nil inner resource", ErrInvalidArgument))
	}

	path := inner.Path()
	if err := inner.SetPath(JoinRoot(root, path)); err != nil {
		return nil, err
	}

	b := &namespaceBackend{forwarder: forwarder{inner: inner}, root: root}
	return &Namespace{File: NewFile(b, path), ns: b}, nil
}

// Root returns the root prefix.
func (n *Namespace) Root() string { return n.ns.root }

// Inner returns the wrapped resource.
func (n *Namespace) Inner() Resource { return n.ns.inner }

func (b *namespaceBackend) BackendSetPath(path string) error {
	return b.inner.SetPath(JoinRoot(b.root, path))
}

func (b *namespaceBackend) BackendSpawn() (Resource, error) {
	inner, err := b.inner.Spawn()
	if err != nil {
		return nil, err
	}
	// A spawn that kept its path is moved back under the namespace.
	if err := inner.SetPath(strings.TrimPrefix(inner.Path(), b.root)); err != nil {
		_ = inner.Release()
		return nil, err
	}
	n, err := NewNamespace(inner, b.root)
	if err != nil {
		_ = inner.Release()
		return nil, err
	}
	return n, nil
}
