// If you are AI: This file contains unit tests for the string reference table.

package amf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringTable(t *testing.T) {
	var st StringTable
	st.Add("abc")
	st.Add("")
	st.Add("def")

	assert.Equal(t, 2, st.Len())

	s, ok := st.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "def", s)

	_, ok = st.Lookup(2)
	assert.False(t, ok)
	_, ok = st.Lookup(-1)
	assert.False(t, ok)

	entries := st.Entries()
	entries[0] = "changed"
	s, _ = st.Lookup(0)
	assert.Equal(t, "abc", s, "Entries must return a copy")
}
