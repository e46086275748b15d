// If you are AI: This file contains unit tests for the value graph.

package amf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphReserveFill(t *testing.T) {
	g := NewGraph()

	parent := g.Reserve()
	child := g.Reserve()
	assert.Equal(t, ValueID(0), parent)
	assert.Equal(t, ValueID(1), child)
	assert.Equal(t, ValueID(2), g.Next())

	_, ok := g.Get(parent)
	assert.False(t, ok, "reserved slot is not visible before it is filled")
	assert.Equal(t, []ValueID{0, 1}, g.Pending())

	require.NoError(t, g.Fill(Descriptor{ID: child, Value: AMF3NullValue{}}))
	require.NoError(t, g.Fill(Descriptor{ID: parent, Value: AMF3ArrayValue{child}}))
	assert.Empty(t, g.Pending())

	d, ok := g.Get(parent)
	require.True(t, ok)
	assert.Equal(t, KindAMF3Array, d.Kind())
	assert.Equal(t, []ValueID{child}, d.Children())
	assert.Equal(t, []ValueID{parent}, g.Roots())
}

func TestGraphFillErrors(t *testing.T) {
	g := NewGraph()
	assert.ErrorIs(t, g.Fill(Descriptor{ID: 3}), ErrUnknownID)

	id := g.Reserve()
	require.NoError(t, g.Fill(Descriptor{ID: id, Value: AMF0NullValue{}}))
	assert.ErrorIs(t, g.Fill(Descriptor{ID: id, Value: AMF0NullValue{}}), ErrAlreadyFilled)

	require.NoError(t, g.Fill(Descriptor{ID: SentinelID, Value: AMF0UndefinedValue{}}))
	assert.ErrorIs(t, g.Fill(Descriptor{ID: SentinelID}), ErrAlreadyFilled)
}

func TestGraphIDsSentinelLast(t *testing.T) {
	g := NewGraph()
	a := g.Reserve()
	b := g.Reserve()
	require.NoError(t, g.Fill(Descriptor{ID: SentinelID, Value: AMF0UndefinedValue{}}))
	require.NoError(t, g.Fill(Descriptor{ID: b, Value: AMF0NullValue{}}))
	require.NoError(t, g.Fill(Descriptor{ID: a, Value: AMF0NullValue{}}))

	assert.Equal(t, []ValueID{a, b, SentinelID}, g.IDs())
	assert.Equal(t, 3, g.Len())

	descs := g.Descriptors()
	require.Len(t, descs, 3)
	assert.Equal(t, SentinelID, descs[2].ID)
}
