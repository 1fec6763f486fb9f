package billyfs

import (
	"io"
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/GenerousLabs/expo-fs/fs/core"
)

// file is one open handle on a node.
type file struct {
	fs   *Filesystem
	node *node
	name string
	flag int

	mu     sync.Mutex
	pos    int64
	closed bool
}

// Name returns the name passed to OpenFile.
func (h *file) Name() string {
	return h.name
}

func (h *file) Read(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, core.ErrClosed
	}
	if !readable(h.flag) {
		return 0, pathError("read", h.name, core.ErrPermission)
	}
	if len(p) == 0 {
		return 0, nil
	}

	n := h.node.readAt(p, h.pos)
	h.pos += int64(n)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (h *file) ReadAt(p []byte, off int64) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, core.ErrClosed
	}
	if !readable(h.flag) {
		return 0, pathError("readat", h.name, core.ErrPermission)
	}
	if off < 0 {
		return 0, pathError("readat", h.name, os.ErrInvalid)
	}

	n := h.node.readAt(p, off)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (h *file) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, core.ErrClosed
	}
	if !writable(h.flag) {
		return 0, pathError("write", h.name, core.ErrPermission)
	}

	if h.flag&os.O_APPEND != 0 {
		h.pos = h.node.appendData(p)
		return len(p), nil
	}
	h.node.writeAt(p, h.pos)
	h.pos += int64(len(p))
	return len(p), nil
}

func (h *file) WriteAt(p []byte, off int64) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, core.ErrClosed
	}
	if !writable(h.flag) {
		return 0, pathError("writeat", h.name, core.ErrPermission)
	}
	if off < 0 {
		return 0, pathError("writeat", h.name, os.ErrInvalid)
	}

	h.node.writeAt(p, off)
	return len(p), nil
}

func (h *file) Seek(offset int64, whence int) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, core.ErrClosed
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = h.pos + offset
	case io.SeekEnd:
		pos = h.node.size() + offset
	default:
		return 0, pathError("seek", h.name, os.ErrInvalid)
	}
	if pos < 0 {
		return 0, pathError("seek", h.name, os.ErrInvalid)
	}
	h.pos = pos
	return pos, nil
}

func (h *file) Truncate(size int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return core.ErrClosed
	}
	if !writable(h.flag) {
		return pathError("truncate", h.name, core.ErrPermission)
	}
	if size < 0 {
		return pathError("truncate", h.name, os.ErrInvalid)
	}
	h.node.truncate(size)
	return nil
}

// Close flushes the contents to the store when the handle could write.
func (h *file) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return core.ErrClosed
	}
	h.closed = true
	h.mu.Unlock()

	if err := h.fs.release(h); err != nil {
		return pathError("close", h.name, err)
	}
	return nil
}

// Lock is a no-op.
func (h *file) Lock() error {
	return nil
}

// Unlock is a no-op.
func (h *file) Unlock() error {
	return nil
}

func readable(flag int) bool {
	return flag&os.O_WRONLY == 0
}

// Compile-time interface checks.
var (
	_ billy.File  = (*file)(nil)
	_ io.WriterAt = (*file)(nil)
)
