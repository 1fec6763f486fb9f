package platformtest

import (
	"context"
	"reflect"
	"testing"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// TestDirectories tests MakeDirectory and ReadDirectory.
func TestDirectories(t *testing.T, p platform.Platform) {
	ctx := context.Background()

	t.Run("MakeDirectory", func(t *testing.T) {
		if err := p.MakeDirectory(ctx, uri(p, "single"), platform.MakeDirectoryOptions{}); err != nil {
			t.Fatalf("MakeDirectory(single): got error %v, want nil", err)
		}
		if i := info(t, p, "single"); !i.Exists || !i.IsDirectory {
			t.Errorf("GetInfo(single) = %+v, want existing directory", i)
		}
	})

	t.Run("MissingParent", func(t *testing.T) {
		err := p.MakeDirectory(ctx, uri(p, "nope/child"), platform.MakeDirectoryOptions{})
		wantCode(t, "MakeDirectory(nope/child)", err, platform.ErrNotFound)
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		mkdir(t, p, "exists")
		err := p.MakeDirectory(ctx, uri(p, "exists"), platform.MakeDirectoryOptions{})
		wantCode(t, "MakeDirectory(exists)", err, platform.ErrAlreadyExists)
	})

	t.Run("Intermediates", func(t *testing.T) {
		opts := platform.MakeDirectoryOptions{Intermediates: true}
		if err := p.MakeDirectory(ctx, uri(p, "a/b/c"), opts); err != nil {
			t.Fatalf("MakeDirectory(a/b/c, intermediates): got error %v, want nil", err)
		}
		if err := p.MakeDirectory(ctx, uri(p, "a/b/c"), opts); err != nil {
			t.Errorf("MakeDirectory(a/b/c, intermediates) again: got error %v, want nil", err)
		}
		for _, rel := range []string{"a", "a/b", "a/b/c"} {
			if i := info(t, p, rel); !i.Exists || !i.IsDirectory {
				t.Errorf("GetInfo(%s) = %+v, want existing directory", rel, i)
			}
		}
	})

	t.Run("OverFile", func(t *testing.T) {
		write(t, p, "plain.txt", "x")
		err := p.MakeDirectory(ctx, uri(p, "plain.txt"), platform.MakeDirectoryOptions{Intermediates: true})
		wantCode(t, "MakeDirectory(plain.txt)", err, platform.ErrAlreadyExists)
	})

	t.Run("ReadDirectorySorted", func(t *testing.T) {
		mkdir(t, p, "list/sub")
		write(t, p, "list/b.txt", "b")
		write(t, p, "list/a.txt", "a")
		write(t, p, "list/sub/deep.txt", "deep")

		names, err := p.ReadDirectory(ctx, uri(p, "list"))
		if err != nil {
			t.Fatalf("ReadDirectory(list): got error %v, want nil", err)
		}
		want := []string{"a.txt", "b.txt", "sub"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("ReadDirectory(list) = %v, want %v", names, want)
		}
	})

	t.Run("ReadDirectoryEmpty", func(t *testing.T) {
		mkdir(t, p, "empty")
		names, err := p.ReadDirectory(ctx, uri(p, "empty"))
		if err != nil {
			t.Fatalf("ReadDirectory(empty): got error %v, want nil", err)
		}
		if len(names) != 0 {
			t.Errorf("ReadDirectory(empty) = %v, want no entries", names)
		}
	})

	t.Run("ReadDirectoryMissing", func(t *testing.T) {
		_, err := p.ReadDirectory(ctx, uri(p, "missing"))
		wantCode(t, "ReadDirectory(missing)", err, platform.ErrNotFound)
	})

	t.Run("ReadDirectoryOnFile", func(t *testing.T) {
		write(t, p, "notdir.txt", "x")
		_, err := p.ReadDirectory(ctx, uri(p, "notdir.txt"))
		wantCode(t, "ReadDirectory(notdir.txt)", err, platform.ErrNotADirectory)
	})

	t.Run("ReadDocumentDirectory", func(t *testing.T) {
		names, err := p.ReadDirectory(ctx, p.DocumentDirectory())
		if err != nil {
			t.Fatalf("ReadDirectory(document directory): got error %v", err)
		}
		if len(names) == 0 {
			t.Errorf("ReadDirectory(document directory) returned no entries")
		}
	})
}
