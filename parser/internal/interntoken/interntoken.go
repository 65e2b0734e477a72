package interntoken

import (
	"sync"
	"unsafe"
)

// Table deduplicates token text so that a program's repeated symbols and
// literals share one backing string.
type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// GetBytes returns a string with the contents of b, reusing an interned copy
// when one exists.  The lookup aliases b without copying; b is only copied
// when it has not been seen before.
func (tab *Table) GetBytes(b []byte) string {
	if tab == nil {
		return string(b)
	}
	probe := unsafe.String(unsafe.SliceData(b), len(b))
	tab.mut.RLock()
	s, ok := tab.intern[probe]
	tab.mut.RUnlock()
	if ok {
		return s
	}
	// The bytes in b must be copied into a permanent string before being
	// inserted as a key in the table.
	return tab.insert(string(b))
}

// Get returns a string equal to s, reusing an interned copy when one exists.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	v, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return v
	}
	return tab.insert(s)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	v, ok := tab.intern[s]
	if !ok {
		tab.intern[s] = s
		v = s
	}
	tab.mut.Unlock()
	return v
}
