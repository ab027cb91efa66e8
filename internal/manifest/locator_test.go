package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/verup/internal/core"
)

func TestLocator_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("current directory", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"a"}`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a", "")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("climbs to ancestor", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"a"}`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a/b/c", "")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("normalizes the start directory", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{}`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a//x/../b/./c/", "")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("closest wins", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"outer"}`))
		fs.SetFile("/a/b/package.json", []byte(`{"name":"inner"}`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a/b/c", "")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/b/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("name filter skips mismatches", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"outer"}`))
		fs.SetFile("/a/b/package.json", []byte(`{"name":"inner"}`))
		fs.SetFile("/a/b/c/package.json", []byte(`not json`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a/b/c", "outer")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("name filter without match", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"outer"}`))

		_, err := NewLocator(fs, "package.json").Find(ctx, "/a", "missing")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected *NotFoundError, got %v", err)
		}
	})

	t.Run("skips own manifest", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"project"}`))
		fs.SetFile("/a/vendor/verup/package.json", []byte(`{"name":"`+SelfName+`"}`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a/vendor/verup", "")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("accepts unparsable manifest without filter", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{ broken`))

		got, err := NewLocator(fs, "package.json").Find(ctx, "/a", "")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != "/a/package.json" {
			t.Errorf("Find() = %q", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/composer.json", []byte(`{}`))

		_, err := NewLocator(fs, "package.json").Find(ctx, "/a/b", "")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected *NotFoundError, got %v", err)
		}
		if err.Error() != "package.json file not found" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("unreadable stops the walk", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetFile("/a/package.json", []byte(`{"name":"outer"}`))
		fs.SetFile("/a/b/package.json", []byte(`{"name":"inner"}`))
		if err := fs.Chmod(ctx, "/a/b/package.json", 0o000); err != nil {
			t.Fatal(err)
		}

		_, err := NewLocator(fs, "package.json").Find(ctx, "/a/b", "")
		var ue *UnreadableError
		if !errors.As(err, &ue) {
			t.Fatalf("expected *UnreadableError, got %v", err)
		}
		if ue.Path != "/a/b/package.json" {
			t.Errorf("Path = %q", ue.Path)
		}
		if err.Error() != "Can't read package.json file" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewLocator(fs, "package.json").Find(cctx, "/a", "")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLocator_FindOnDisk(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub-directory", "deeper")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "composer.json")
	if err := os.WriteFile(want, []byte(`{"name":"test/project"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewLocator(core.NewOSFileSystem(), "composer.json").Find(context.Background(), nested, "test/project")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}
