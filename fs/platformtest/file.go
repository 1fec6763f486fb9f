package platformtest

import (
	"context"
	"math"
	"testing"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// TestFiles tests ReadAsString and WriteAsString.
func TestFiles(t *testing.T, p platform.Platform) {
	ctx := context.Background()
	mkdir(t, p, "files")

	t.Run("RoundTripUTF8", func(t *testing.T) {
		write(t, p, "files/utf8.txt", "héllo wörld")
		if got := read(t, p, "files/utf8.txt"); got != "héllo wörld" {
			t.Errorf("ReadAsString(files/utf8.txt) = %q, want %q", got, "héllo wörld")
		}
	})

	t.Run("RoundTripBase64", func(t *testing.T) {
		// 0x00 0xff 0x10 0x80
		err := p.WriteAsString(ctx, uri(p, "files/bin"), "AP8QgA==", platform.WriteOptions{Encoding: platform.EncodingBase64})
		if err != nil {
			t.Fatalf("WriteAsString(files/bin, base64): got error %v", err)
		}
		got, err := p.ReadAsString(ctx, uri(p, "files/bin"), platform.ReadOptions{Encoding: platform.EncodingBase64})
		if err != nil {
			t.Fatalf("ReadAsString(files/bin, base64): got error %v", err)
		}
		if got != "AP8QgA==" {
			t.Errorf("ReadAsString(files/bin, base64) = %q, want %q", got, "AP8QgA==")
		}
		if i := info(t, p, "files/bin"); i.Size != 4 {
			t.Errorf("GetInfo(files/bin).Size = %d, want 4", i.Size)
		}
	})

	t.Run("Base64Range", func(t *testing.T) {
		write(t, p, "files/range.txt", "hello world")
		got, err := p.ReadAsString(ctx, uri(p, "files/range.txt"), platform.ReadOptions{
			Encoding: platform.EncodingBase64,
			Position: 6,
			Length:   5,
		})
		if err != nil {
			t.Fatalf("ReadAsString(files/range.txt, range): got error %v", err)
		}
		if got != "d29ybGQ=" {
			t.Errorf("ReadAsString(files/range.txt, range) = %q, want base64 of %q", got, "world")
		}
	})

	t.Run("Base64RangeToEnd", func(t *testing.T) {
		write(t, p, "files/tail.txt", "hello world")
		got, err := p.ReadAsString(ctx, uri(p, "files/tail.txt"), platform.ReadOptions{
			Encoding: platform.EncodingBase64,
			Position: 6,
			Length:   math.MaxInt64,
		})
		if err != nil {
			t.Fatalf("ReadAsString(files/tail.txt, max length): got error %v", err)
		}
		if got != "d29ybGQ=" {
			t.Errorf("ReadAsString(files/tail.txt, max length) = %q, want base64 of %q", got, "world")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		write(t, p, "files/over.txt", "a much longer original")
		write(t, p, "files/over.txt", "short")
		if got := read(t, p, "files/over.txt"); got != "short" {
			t.Errorf("ReadAsString(files/over.txt) = %q, want %q", got, "short")
		}
	})

	t.Run("EmptyFile", func(t *testing.T) {
		write(t, p, "files/empty", "")
		if got := read(t, p, "files/empty"); got != "" {
			t.Errorf("ReadAsString(files/empty) = %q, want empty", got)
		}
		if i := info(t, p, "files/empty"); !i.Exists || i.IsDirectory {
			t.Errorf("GetInfo(files/empty) = %+v, want existing file", i)
		}
	})

	t.Run("WriteMissingParent", func(t *testing.T) {
		err := p.WriteAsString(ctx, uri(p, "nope/file.txt"), "x", platform.WriteOptions{})
		wantCode(t, "WriteAsString(nope/file.txt)", err, platform.ErrNotFound)
	})

	t.Run("WriteOverDirectory", func(t *testing.T) {
		mkdir(t, p, "files/adir")
		err := p.WriteAsString(ctx, uri(p, "files/adir"), "x", platform.WriteOptions{})
		wantCode(t, "WriteAsString(files/adir)", err, platform.ErrIsDirectory)
	})

	t.Run("ReadMissing", func(t *testing.T) {
		_, err := p.ReadAsString(ctx, uri(p, "files/missing"), platform.ReadOptions{})
		wantCode(t, "ReadAsString(files/missing)", err, platform.ErrNotFound)
	})

	t.Run("ReadDirectory", func(t *testing.T) {
		_, err := p.ReadAsString(ctx, uri(p, "files"), platform.ReadOptions{})
		wantCode(t, "ReadAsString(files)", err, platform.ErrIsDirectory)
	})
}
