package billyfs

import "sync"

// node is the shared buffer behind every open handle on one path.
type node struct {
	path string
	refs int

	// detached nodes were removed or replaced while open and are never
	// flushed.
	detached bool

	mu    sync.RWMutex
	data  []byte
	dirty bool
}

func (n *node) size() int64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return int64(len(n.data))
}

func (n *node) readAt(p []byte, off int64) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if off >= int64(len(n.data)) {
		return 0
	}
	return copy(p, n.data[off:])
}

func (n *node) writeAt(p []byte, off int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if end := off + int64(len(p)); end > int64(len(n.data)) {
		n.grow(end)
	}
	copy(n.data[off:], p)
	n.dirty = true
}

// appendData writes p at the end and returns the new length.
func (n *node) appendData(p []byte) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.data = append(n.data, p...)
	n.dirty = true
	return int64(len(n.data))
}

func (n *node) truncate(size int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if size > int64(len(n.data)) {
		n.grow(size)
	} else {
		n.data = n.data[:size]
	}
	n.dirty = true
}

// grow extends data with zeros to size. Callers hold n.mu.
func (n *node) grow(size int64) {
	if size <= int64(cap(n.data)) {
		old := len(n.data)
		n.data = n.data[:size]
		clear(n.data[old:])
		return
	}
	data := make([]byte, size, size*2)
	copy(data, n.data)
	n.data = data
}

func (n *node) snapshot() ([]byte, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.dirty {
		return nil, false
	}
	data := make([]byte, len(n.data))
	copy(data, n.data)
	return data, true
}

func (n *node) markClean() {
	n.mu.Lock()
	n.dirty = false
	n.mu.Unlock()
}
