package platformtest

import (
	"context"
	"testing"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// TestDelete tests Delete on files, trees and missing entries.
func TestDelete(t *testing.T, p platform.Platform) {
	ctx := context.Background()

	t.Run("File", func(t *testing.T) {
		write(t, p, "gone.txt", "x")
		if err := p.Delete(ctx, uri(p, "gone.txt"), platform.DeleteOptions{}); err != nil {
			t.Fatalf("Delete(gone.txt): got error %v, want nil", err)
		}
		if info(t, p, "gone.txt").Exists {
			t.Errorf("GetInfo(gone.txt) after Delete: still exists")
		}
	})

	t.Run("Tree", func(t *testing.T) {
		mkdir(t, p, "tree/a/b")
		write(t, p, "tree/top.txt", "1")
		write(t, p, "tree/a/b/leaf.txt", "2")

		if err := p.Delete(ctx, uri(p, "tree"), platform.DeleteOptions{}); err != nil {
			t.Fatalf("Delete(tree): got error %v, want nil", err)
		}
		for _, rel := range []string{"tree", "tree/top.txt", "tree/a", "tree/a/b/leaf.txt"} {
			if info(t, p, rel).Exists {
				t.Errorf("GetInfo(%s) after Delete(tree): still exists", rel)
			}
		}
	})

	t.Run("Missing", func(t *testing.T) {
		err := p.Delete(ctx, uri(p, "missing"), platform.DeleteOptions{})
		wantCode(t, "Delete(missing)", err, platform.ErrNotFound)
	})

	t.Run("MissingIdempotent", func(t *testing.T) {
		if err := p.Delete(ctx, uri(p, "missing"), platform.DeleteOptions{Idempotent: true}); err != nil {
			t.Errorf("Delete(missing, idempotent): got error %v, want nil", err)
		}
	})

	t.Run("SiblingPrefixSurvives", func(t *testing.T) {
		mkdir(t, p, "pre")
		mkdir(t, p, "prefix")
		write(t, p, "prefix/keep.txt", "keep")

		if err := p.Delete(ctx, uri(p, "pre"), platform.DeleteOptions{}); err != nil {
			t.Fatalf("Delete(pre): got error %v", err)
		}
		if got := read(t, p, "prefix/keep.txt"); got != "keep" {
			t.Errorf("ReadAsString(prefix/keep.txt) = %q after deleting sibling, want %q", got, "keep")
		}
	})
}

// TestMove tests Move of files and directories.
func TestMove(t *testing.T, p platform.Platform) {
	ctx := context.Background()

	t.Run("File", func(t *testing.T) {
		write(t, p, "old.txt", "content")
		if err := p.Move(ctx, uri(p, "old.txt"), uri(p, "new.txt")); err != nil {
			t.Fatalf("Move(old.txt, new.txt): got error %v, want nil", err)
		}
		if info(t, p, "old.txt").Exists {
			t.Errorf("GetInfo(old.txt) after Move: still exists")
		}
		if got := read(t, p, "new.txt"); got != "content" {
			t.Errorf("ReadAsString(new.txt) = %q, want %q", got, "content")
		}
	})

	t.Run("ReplaceFile", func(t *testing.T) {
		write(t, p, "src.lock", "new")
		write(t, p, "dst", "old")
		if err := p.Move(ctx, uri(p, "src.lock"), uri(p, "dst")); err != nil {
			t.Fatalf("Move(src.lock, dst): got error %v, want nil", err)
		}
		if got := read(t, p, "dst"); got != "new" {
			t.Errorf("ReadAsString(dst) = %q, want %q", got, "new")
		}
	})

	t.Run("Directory", func(t *testing.T) {
		mkdir(t, p, "olddir/sub")
		write(t, p, "olddir/sub/file.txt", "nested")
		if err := p.Move(ctx, uri(p, "olddir"), uri(p, "newdir")); err != nil {
			t.Fatalf("Move(olddir, newdir): got error %v, want nil", err)
		}
		if info(t, p, "olddir").Exists {
			t.Errorf("GetInfo(olddir) after Move: still exists")
		}
		if got := read(t, p, "newdir/sub/file.txt"); got != "nested" {
			t.Errorf("ReadAsString(newdir/sub/file.txt) = %q, want %q", got, "nested")
		}
	})

	t.Run("MissingSource", func(t *testing.T) {
		err := p.Move(ctx, uri(p, "missing"), uri(p, "anywhere"))
		wantCode(t, "Move(missing)", err, platform.ErrNotFound)
	})

	t.Run("MissingDestinationParent", func(t *testing.T) {
		write(t, p, "orphan.txt", "x")
		err := p.Move(ctx, uri(p, "orphan.txt"), uri(p, "nope/orphan.txt"))
		wantCode(t, "Move(orphan.txt, nope/orphan.txt)", err, platform.ErrNotFound)
	})
}

// TestCopy tests Copy of files and directories.
func TestCopy(t *testing.T, p platform.Platform) {
	ctx := context.Background()

	t.Run("File", func(t *testing.T) {
		write(t, p, "orig.txt", "copy me")
		if err := p.Copy(ctx, uri(p, "orig.txt"), uri(p, "dup.txt")); err != nil {
			t.Fatalf("Copy(orig.txt, dup.txt): got error %v, want nil", err)
		}
		if got := read(t, p, "orig.txt"); got != "copy me" {
			t.Errorf("ReadAsString(orig.txt) = %q after Copy, want %q", got, "copy me")
		}
		if got := read(t, p, "dup.txt"); got != "copy me" {
			t.Errorf("ReadAsString(dup.txt) = %q, want %q", got, "copy me")
		}
	})

	t.Run("Directory", func(t *testing.T) {
		mkdir(t, p, "srcdir/inner")
		write(t, p, "srcdir/inner/f.txt", "f")
		if err := p.Copy(ctx, uri(p, "srcdir"), uri(p, "dstdir")); err != nil {
			t.Fatalf("Copy(srcdir, dstdir): got error %v, want nil", err)
		}
		if got := read(t, p, "dstdir/inner/f.txt"); got != "f" {
			t.Errorf("ReadAsString(dstdir/inner/f.txt) = %q, want %q", got, "f")
		}
		if !info(t, p, "srcdir/inner/f.txt").Exists {
			t.Errorf("GetInfo(srcdir/inner/f.txt) after Copy: missing")
		}
	})

	t.Run("MissingSource", func(t *testing.T) {
		err := p.Copy(ctx, uri(p, "missing"), uri(p, "anywhere"))
		wantCode(t, "Copy(missing)", err, platform.ErrNotFound)
	})
}

// TestURIs tests that URIs outside the document directory are rejected.
func TestURIs(t *testing.T, p platform.Platform) {
	ctx := context.Background()
	outside := "file:///definitely/not/the/document/directory/x"

	if _, err := p.GetInfo(ctx, outside); !platform.IsCode(err, platform.ErrInvalidURI) {
		t.Errorf("GetInfo(outside): got error %v, want %s", err, platform.ErrInvalidURI)
	}
	err := p.WriteAsString(ctx, outside, "x", platform.WriteOptions{})
	wantCode(t, "WriteAsString(outside)", err, platform.ErrInvalidURI)

	escape := p.DocumentDirectory() + "../escape.txt"
	err = p.WriteAsString(ctx, escape, "x", platform.WriteOptions{})
	wantCode(t, "WriteAsString(../escape.txt)", err, platform.ErrInvalidURI)
}
