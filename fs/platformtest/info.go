package platformtest

import (
	"context"
	"testing"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// TestInfo tests GetInfo on files, directories, missing entries and the
// document directory itself.
func TestInfo(t *testing.T, p platform.Platform) {
	mkdir(t, p, "dir")
	write(t, p, "dir/file.txt", "hello")

	t.Run("File", func(t *testing.T) {
		i := info(t, p, "dir/file.txt")
		if !i.Exists || i.IsDirectory {
			t.Fatalf("GetInfo(dir/file.txt) = %+v, want existing file", i)
		}
		if i.Size != 5 {
			t.Errorf("GetInfo(dir/file.txt).Size = %d, want 5", i.Size)
		}
		if i.ModificationTime <= 0 {
			t.Errorf("GetInfo(dir/file.txt).ModificationTime = %v, want > 0", i.ModificationTime)
		}
		if i.URI != uri(p, "dir/file.txt") {
			t.Errorf("GetInfo(dir/file.txt).URI = %q, want %q", i.URI, uri(p, "dir/file.txt"))
		}
	})

	t.Run("Directory", func(t *testing.T) {
		i := info(t, p, "dir")
		if !i.Exists || !i.IsDirectory {
			t.Fatalf("GetInfo(dir) = %+v, want existing directory", i)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		i := info(t, p, "missing/file.txt")
		if i.Exists {
			t.Errorf("GetInfo(missing/file.txt).Exists = true, want false")
		}
	})

	t.Run("DocumentDirectory", func(t *testing.T) {
		i, err := p.GetInfo(context.Background(), p.DocumentDirectory())
		if err != nil {
			t.Fatalf("GetInfo(document directory): got error %v", err)
		}
		if !i.Exists || !i.IsDirectory {
			t.Errorf("GetInfo(document directory) = %+v, want existing directory", i)
		}
	})
}
