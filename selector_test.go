package iokit_test

import (
	"strings"
	"testing"

	"github.com/gobeaver/iokit"
	"github.com/gobeaver/iokit/driver/native"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func newTree(t *testing.T) *native.File {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"/tree/a.txt",
		"/tree/b.log",
		"/tree/docs/c.txt",
		"/tree/docs/deep/d.txt",
		"/tree/img/e.png",
	} {
		if err := afero.WriteFile(fs, p, []byte(p), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return native.NewWithFs(fs, "/tree/")
}

func rels(entries []iokit.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Rel)
	}
	return out
}

func TestListMatching(t *testing.T) {
	tests := []struct {
		name      string
		selector  iokit.Selector
		recursive bool
		want      []string
	}{
		{
			name:     "all immediate children",
			selector: iokit.All(),
			want:     []string{"a.txt", "b.log", "docs", "img"},
		},
		{
			name:      "all recursive",
			selector:  nil,
			recursive: true,
			want:      []string{"a.txt", "b.log", "docs", "docs/c.txt", "docs/deep", "docs/deep/d.txt", "img", "img/e.png"},
		},
		{
			name:      "glob within one segment",
			selector:  iokit.Glob("*.txt"),
			recursive: true,
			want:      []string{"a.txt"},
		},
		{
			name:      "glob across segments",
			selector:  iokit.Glob("**.txt"),
			recursive: true,
			want:      []string{"a.txt", "docs/c.txt", "docs/deep/d.txt"},
		},
		{
			name:      "dirs only",
			selector:  iokit.DirsOnly(),
			recursive: true,
			want:      []string{"docs", "docs/deep", "img"},
		},
		{
			name:      "files not txt",
			selector:  iokit.And(iokit.FilesOnly(), iokit.Not(iokit.Glob("**.txt"))),
			recursive: true,
			want:      []string{"b.log", "img/e.png"},
		},
		{
			name:      "or",
			selector:  iokit.Or(iokit.Glob("*.log"), iokit.Glob("img/*")),
			recursive: true,
			want:      []string{"b.log", "img/e.png"},
		},
		{
			name:     "func selector",
			selector: iokit.FuncSelector(func(e *iokit.Entry) bool { return strings.HasPrefix(e.Name, "a") }),
			want:     []string{"a.txt"},
		},
		{
			name: "traversal pruned",
			selector: iokit.FuncSelectorFull(
				func(e *iokit.Entry) bool { return !e.IsDir },
				func(e *iokit.Entry) bool { return e.Name != "docs/" },
			),
			recursive: true,
			want:      []string{"a.txt", "b.log", "img/e.png"},
		},
		{
			name:     "invalid glob matches nothing",
			selector: iokit.Glob("[a-"),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newTree(t)
			entries, err := iokit.ListMatching(dir, tt.selector, tt.recursive)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, rels(entries)); diff != "" {
				t.Errorf("ListMatching() mismatch (-want +got):\n%s", diff)
			}
			if dir.Path() != "/tree/" {
				t.Errorf("path not restored: %q", dir.Path())
			}
		})
	}
}

func TestListMatchingEntryFields(t *testing.T) {
	entries, err := iokit.ListMatching(newTree(t), iokit.Glob("docs/deep"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []iokit.Entry{{Name: "deep/", Path: "/tree/docs/deep/", Rel: "docs/deep", IsDir: true}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("ListMatching() mismatch (-want +got):\n%s", diff)
	}
}

func TestListMatchingRequiresDirectory(t *testing.T) {
	f := native.NewWithFs(afero.NewMemMapFs(), "/tree/a.txt")
	if _, err := iokit.ListMatching(f, iokit.All(), false); !iokit.IsInvalidState(err) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}
