package iokit_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gobeaver/iokit"
	"github.com/gobeaver/iokit/driver/memory"
	"github.com/gobeaver/iokit/driver/native"
	_ "github.com/gobeaver/iokit/driver/zip"
	"github.com/google/go-cmp/cmp"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
}

func TestDrivers(t *testing.T) {
	want := []string{"memory", "native", "zip"}
	if diff := cmp.Diff(want, iokit.Drivers()); diff != "" {
		t.Errorf("Drivers() mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "hello.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	zipPath := filepath.Join(tmpDir, "bundle.zip")
	writeZip(t, zipPath, map[string]string{"dir1/test2.txt": "test file #2.\n"})

	tests := []struct {
		name     string
		config   iokit.Config
		wantErr  string
		wantLoad string
	}{
		{
			name:    "unknown driver",
			config:  iokit.Config{Driver: "s3"},
			wantErr: "unknown driver: s3",
		},
		{
			name:     "native driver",
			config:   iokit.Config{Driver: "native", Path: filepath.Join(tmpDir, "hello.txt")},
			wantLoad: "hello",
		},
		{
			name:     "native driver under root",
			config:   iokit.Config{Driver: "native", Root: tmpDir + "/", Path: "hello.txt"},
			wantLoad: "hello",
		},
		{
			name:     "memory driver",
			config:   iokit.Config{Driver: "memory"},
			wantLoad: "",
		},
		{
			name:     "zip driver",
			config:   iokit.Config{Driver: "zip", ZipContainer: zipPath, Path: "dir1/test2.txt"},
			wantLoad: "test file #2.\n",
		},
		{
			name:    "zip driver with missing container",
			config:  iokit.Config{Driver: "zip", ZipContainer: filepath.Join(tmpDir, "missing.zip")},
			wantErr: "failed to create driver",
		},
		{
			name:    "invalid log level",
			config:  iokit.Config{Driver: "memory", LogLevel: "loud"},
			wantErr: "invalid config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := iokit.New(&tt.config)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("New() error = %v, want error containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer r.Release()

			got, err := r.Load(iokit.NoLimit)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if string(got) != tt.wantLoad {
				t.Errorf("Load() = %q, want %q", got, tt.wantLoad)
			}
		})
	}
}

func TestNewWrappers(t *testing.T) {
	tmpDir := t.TempDir()

	r, err := iokit.New(&iokit.Config{Driver: "native", Root: tmpDir + "/", Path: "x.txt", ReadOnly: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ro, ok := r.(*iokit.ReadOnly)
	if !ok {
		t.Fatalf("expected *iokit.ReadOnly, got %T", r)
	}
	ns, ok := ro.Unwrap().(*iokit.Namespace)
	if !ok {
		t.Fatalf("expected *iokit.Namespace inside, got %T", ro.Unwrap())
	}
	if _, ok := ns.Inner().(*native.File); !ok {
		t.Fatalf("expected *native.File inside, got %T", ns.Inner())
	}
	if ns.Inner().Path() != tmpDir+"/x.txt" {
		t.Errorf("inner path = %q", ns.Inner().Path())
	}
	if err := r.Open(iokit.ModeCreate); !iokit.IsReadOnlyError(err) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	iokit.Reset()
	t.Cleanup(iokit.Reset)

	if err := iokit.Init(&iokit.Config{Driver: "memory"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	r, err := iokit.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if _, ok := r.(*memory.Buffer); !ok {
		t.Errorf("expected *memory.Buffer, got %T", r)
	}

	again, _ := iokit.Default()
	if again != r {
		t.Error("expected the same default instance")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("BEAVER_IOKIT_DRIVER", "memory")
	t.Setenv("BEAVER_IOKIT_PATH", "blob")

	r, err := iokit.NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	if _, ok := r.(*memory.Buffer); !ok {
		t.Errorf("expected *memory.Buffer, got %T", r)
	}
	if r.Path() != "blob" {
		t.Errorf("Path() = %q", r.Path())
	}
}
