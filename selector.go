package iokit

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ============================================================================
// Selector Interface
// ============================================================================

// Entry is one child reported by ListMatching.
type Entry struct {
	// Name is the child name as ListDir reports it; directories end in '/'.
	Name string
	// Path is the full resource path of the child.
	Path string
	// Rel is the path relative to the directory the listing started from,
	// without the trailing '/' of directories.
	Rel string
	// IsDir reports whether the child is a directory.
	IsDir bool
}

// Selector filters the entries of a directory listing.
//
// Example usage:
//
//	// Text files at any depth
//	entries, err := iokit.ListMatching(dir, iokit.Glob("**.txt"), true)
//
//	// Composed selector
//	sel := iokit.And(iokit.FilesOnly(), iokit.Not(iokit.Glob("*.tmp")))
//	entries, err := iokit.ListMatching(dir, sel, false)
type Selector interface {
	// Match returns true if the entry should be included in results.
	Match(e *Entry) bool

	// TraverseDescendants returns true if a directory should be descended
	// into during a recursive listing.
	TraverseDescendants(e *Entry) bool
}

// ============================================================================
// ListMatching
// ============================================================================

// ListMatching lists the directory r denotes and returns the entries that
// sel matches, descending into subdirectories when recursive is set. r must
// be closed; its path is restored before returning.
func ListMatching(r Resource, sel Selector, recursive bool) ([]Entry, error) {
	if sel == nil {
		sel = All()
	}
	if r.Path() != "" && !r.IsDir() {
		return nil, NewPathError("list", r.Path(), fmt.Errorf("%w: %w", ErrInvalidState, ErrNotDir))
	}

	start := r.Path()
	defer func() { _ = r.SetPath(start) }()

	var results []Entry
	if err := listRecursive(r, start, "", sel, recursive, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func listRecursive(r Resource, dir, rel string, sel Selector, recursive bool, results *[]Entry) error {
	if err := r.SetPath(dir); err != nil {
		return err
	}
	names, err := r.ListDir(0)
	if err != nil {
		return err
	}

	for _, name := range names {
		e := Entry{
			Name:  name,
			Path:  dir + name,
			Rel:   strings.TrimSuffix(rel+name, "/"),
			IsDir: IsDir(name),
		}

		if sel.Match(&e) {
			*results = append(*results, e)
		}
		if e.IsDir && recursive && sel.TraverseDescendants(&e) {
			if err := listRecursive(r, e.Path, rel+name, sel, recursive, results); err != nil {
				return err
			}
		}
	}

	return nil
}

// ============================================================================
// Built-in Selectors
// ============================================================================

// AllSelector matches all entries and traverses all directories.
type AllSelector struct{}

func (s AllSelector) Match(e *Entry) bool               { return true }
func (s AllSelector) TraverseDescendants(e *Entry) bool { return true }

// All returns a selector that matches everything.
func All() Selector {
	return AllSelector{}
}

type kindSelector struct {
	dirs bool
}

// FilesOnly matches non-directory entries.
func FilesOnly() Selector { return kindSelector{dirs: false} }

// DirsOnly matches directory entries.
func DirsOnly() Selector { return kindSelector{dirs: true} }

func (s kindSelector) Match(e *Entry) bool             { return e.IsDir == s.dirs }
func (kindSelector) TraverseDescendants(*Entry) bool { return true }

// ============================================================================
// Glob - Pattern matching
// ============================================================================

type globSelector struct {
	g glob.Glob
}

// Glob creates a selector matching the relative path of an entry against
// pattern. '*' stays within one path segment, '**' crosses segments.
// Supports: *, **, ?, [abc], [a-z], {a,b}
//
// Examples:
//
//	Glob("*.txt")        // .txt files directly in the listed directory
//	Glob("**.txt")       // .txt files at any depth
//	Glob("dir1/*")       // children of dir1
//
// An invalid pattern matches nothing.
func Glob(pattern string) Selector {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		logger().WithField("pattern", pattern).WithError(err).Debug("invalid glob pattern")
		return &globSelector{}
	}
	return &globSelector{g: g}
}

func (s *globSelector) Match(e *Entry) bool {
	if s.g == nil {
		return false
	}
	return s.g.Match(e.Rel)
}

func (s *globSelector) TraverseDescendants(e *Entry) bool {
	return true
}

// ============================================================================
// Composable Selectors (And, Or, Not)
// ============================================================================

type andSelector struct {
	selectors []Selector
}

// And matches only if ALL selectors match.
func And(selectors ...Selector) Selector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(e *Entry) bool {
	for _, sel := range s.selectors {
		if !sel.Match(e) {
			return false
		}
	}
	return true
}

func (s *andSelector) TraverseDescendants(e *Entry) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(e) {
			return true
		}
	}
	return false
}

type orSelector struct {
	selectors []Selector
}

// Or matches if ANY selector matches.
func Or(selectors ...Selector) Selector {
	return &orSelector{selectors: selectors}
}

func (s *orSelector) Match(e *Entry) bool {
	for _, sel := range s.selectors {
		if sel.Match(e) {
			return true
		}
	}
	return false
}

func (s *orSelector) TraverseDescendants(e *Entry) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(e) {
			return true
		}
	}
	return false
}

type notSelector struct {
	selector Selector
}

// Not inverts a selector's match result.
func Not(selector Selector) Selector {
	return &notSelector{selector: selector}
}

func (s *notSelector) Match(e *Entry) bool {
	return !s.selector.Match(e)
}

func (s *notSelector) TraverseDescendants(e *Entry) bool {
	return true
}

// ============================================================================
// FuncSelector - Custom logic
// ============================================================================

type funcSelector struct {
	matchFn    func(*Entry) bool
	traverseFn func(*Entry) bool
}

// FuncSelector creates a selector from a custom function.
//
// Example:
//
//	FuncSelector(func(e *iokit.Entry) bool {
//	    return strings.HasPrefix(e.Name, "report")
//	})
func FuncSelector(fn func(*Entry) bool) Selector {
	return &funcSelector{
		matchFn:    fn,
		traverseFn: func(*Entry) bool { return true },
	}
}

// FuncSelectorFull creates a selector with custom match and traverse functions.
func FuncSelectorFull(matchFn, traverseFn func(*Entry) bool) Selector {
	return &funcSelector{
		matchFn:    matchFn,
		traverseFn: traverseFn,
	}
}

func (s *funcSelector) Match(e *Entry) bool               { return s.matchFn(e) }
func (s *funcSelector) TraverseDescendants(e *Entry) bool { return s.traverseFn(e) }
