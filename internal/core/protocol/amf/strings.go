// If you are AI: This file implements the AMF3 string reference table.
// Only inline, non-empty strings are interned.

package amf

// StringTable records inline AMF3 strings in first-seen order.
type StringTable struct {
	entries []string
}

// Add interns s. Empty strings are ignored.
func (t *StringTable) Add(s string) {
	if s == "" {
		return
	}
	t.entries = append(t.entries, s)
}

// Lookup resolves a reference index.
func (t *StringTable) Lookup(index int) (string, bool) {
	if index < 0 || index >= len(t.entries) {
		return "", false
	}
	return t.entries[index], true
}

// Len returns the number of interned strings.
func (t *StringTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table in insertion order.
func (t *StringTable) Entries() []string {
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}
