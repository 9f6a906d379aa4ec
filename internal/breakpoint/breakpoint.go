// Package breakpoint implements the software breakpoint table: a
// symbol-keyed set of installed breakpoints, unique by final absolute
// address, with insertion-order indices that shift down on deletion.
package breakpoint

import "github.com/tkyk0317/godbg/internal/addr"

// Breakpoint is one installed software breakpoint: the symbol it was
// set on, the address it was patched at, and the original word saved
// from tracee memory before patching.
type Breakpoint struct {
	Symbol    string
	Address   addr.Address
	SavedWord uint64
}

// Table is the ordered, address-unique collection of installed
// breakpoints. The zero value is ready to use.
type Table struct {
	entries []Breakpoint
}

// Register adds a breakpoint. It returns false without modifying the
// table if a breakpoint at the same final absolute address already
// exists.
func (t *Table) Register(symbol string, address addr.Address, savedWord uint64) bool {
	if t.Contains(address) {
		return false
	}
	t.entries = append(t.entries, Breakpoint{
		Symbol:    symbol,
		Address:   address,
		SavedWord: savedWord,
	})
	return true
}

// Contains reports whether a breakpoint is registered at address's
// final absolute address.
func (t *Table) Contains(address addr.Address) bool {
	_, ok := t.Find(address)
	return ok
}

// Find returns the breakpoint registered at address's final absolute
// address, if any.
func (t *Table) Find(address addr.Address) (Breakpoint, bool) {
	for _, bp := range t.entries {
		if bp.Address.Get() == address.Get() {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// Delete removes the breakpoint at the given index, shifting every
// later entry's index down by one. Out-of-range index is a silent
// no-op, matching the shell's "not entried breakpoint" behavior on a
// stale index.
func (t *Table) Delete(index int) (Breakpoint, bool) {
	if index < 0 || index >= len(t.entries) {
		return Breakpoint{}, false
	}
	bp := t.entries[index]
	t.entries = append(t.entries[:index], t.entries[index+1:]...)
	return bp, true
}

// List returns every registered breakpoint in insertion order. The
// returned slice indices match the indices Delete expects.
func (t *Table) List() []Breakpoint {
	out := make([]Breakpoint, len(t.entries))
	copy(out, t.entries)
	return out
}
