package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOccupancyGrid(t *testing.T) {
	g, err := NewOccupancyGrid(3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 27, g.Len())
	assert.Zero(t, g.Count())

	_, err = NewOccupancyGrid(0)
	require.ErrorIs(t, err, ErrInvalidResolution)
}

func TestNewOccupancyGrid_UpperBound(t *testing.T) {
	g, err := NewOccupancyGrid(MaxBaseGridSize)
	require.NoError(t, err)
	assert.Equal(t, MaxBaseGridSize*MaxBaseGridSize*MaxBaseGridSize, g.Len())

	for _, size := range []int{MaxBaseGridSize + 1, 3_000_000, 1 << 40} {
		_, err := NewOccupancyGrid(size)
		require.ErrorIs(t, err, ErrInvalidResolution, "size %d", size)
	}
}

func TestOccupancyGrid_SetAt(t *testing.T) {
	g, _ := NewOccupancyGrid(2)

	assert.True(t, g.Set(Index{1, 0, 1}, true))
	assert.True(t, g.At(Index{1, 0, 1}))
	assert.False(t, g.At(Index{0, 1, 1}))

	assert.False(t, g.Set(Index{2, 0, 0}, true))
	assert.False(t, g.Set(Index{0, -1, 0}, true))
	assert.False(t, g.At(Index{2, 0, 0}))
	assert.Equal(t, 1, g.Count())

	g.Set(Index{1, 0, 1}, false)
	assert.Zero(t, g.Count())
}

func TestOccupancyGrid_OccupiedOrderAndEarlyStop(t *testing.T) {
	g, _ := NewOccupancyGrid(3)
	g.Set(Index{2, 0, 0}, true)
	g.Set(Index{0, 2, 1}, true)
	g.Set(Index{0, 0, 2}, true)

	var got []Index
	for i := range g.Occupied() {
		got = append(got, i)
	}
	assert.Equal(t, []Index{{0, 0, 2}, {0, 2, 1}, {2, 0, 0}}, got)

	n := 0
	for range g.Occupied() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestOccupancyGrid_Layer(t *testing.T) {
	g, _ := NewOccupancyGrid(2)
	g.Set(Index{0, 0, 0}, true)
	g.Set(Index{1, 1, 0}, true)
	g.Set(Index{1, 0, 1}, true)

	assert.Equal(t, ".#\n#.\n", g.Layer(0))
	assert.Equal(t, "..\n.#\n", g.Layer(1))
	assert.Equal(t, "z=0\n.#\n#.\nz=1\n..\n.#\n", g.String())
}
