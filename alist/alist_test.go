package alist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena"
)

// TestList_PushGrowsDoubled verifies the doubled-growth policy on a tiny list.
func TestList_PushGrowsDoubled(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[*int](&a, 1)
	require.Equal(t, 1, l.Cap())

	first, second := new(int), new(int)
	l.Push(first)
	assert.Equal(t, 1, l.Cap(), "the first push fits without growing")

	l.Push(second)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 4, l.Cap(), "growth doubles the required capacity")
	assert.Same(t, first, *l.At(0))
	assert.Same(t, second, *l.At(1))
}

// TestList_DropFront verifies dropping advances the view without moving items.
func TestList_DropFront(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[*int](&a, 1)
	first, second := new(int), new(int)
	l.Push(first)
	l.Push(second)

	l.DropFront(1)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 3, l.Cap(), "the dropped slot leaves the capacity too")
	assert.Same(t, second, *l.At(0))

	l.DropFront(5)
	assert.Zero(t, l.Len(), "dropping past the end clamps to the length")

	l.DropFront(0)
	assert.Zero(t, l.Len())
}

// TestList_Sentinel verifies a zero item always follows the contents.
func TestList_Sentinel(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[int](&a, 2)
	l.Push(7)
	l.Push(8)
	l.Push(9)

	term := l.Terminated()
	require.Len(t, term, 4)
	assert.Equal(t, []int{7, 8, 9, 0}, term)

	l.SetLen(1)
	assert.Equal(t, []int{7, 0}, l.Terminated())
}

// TestList_SetLen verifies zero-fill on grow and truncation.
func TestList_SetLen(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[int](&a, 2)
	l.Push(5)

	l.SetLen(4)
	assert.Equal(t, []int{5, 0, 0, 0}, l.View())

	l.SetLen(-1)
	assert.Zero(t, l.Len())
}

// TestList_CopyIndependent verifies copies do not share mutations.
func TestList_CopyIndependent(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[int](&a, 4)
	l.Push(1)
	l.Push(2)

	c := l.Copy(8)
	require.GreaterOrEqual(t, c.Cap(), 8)
	require.Equal(t, []int{1, 2}, c.View())

	*l.At(0) = 99
	assert.Equal(t, []int{1, 2}, c.View())

	c.Push(3)
	assert.Equal(t, 2, l.Len())
}

// TestList_ResizeCapacity verifies shrink and relocation keep the contents.
func TestList_ResizeCapacity(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[int](&a, 16)
	l.Push(1)
	l.Push(2)

	l.ResizeCapacity(0)
	assert.Equal(t, 2, l.Cap())
	assert.Equal(t, []int{1, 2}, l.View())

	// Force a relocation by growing past the shrunk allocation after an
	// unrelated allocation takes over the resize slot.
	a.Bytes(64)
	l.ResizeCapacity(32)
	assert.GreaterOrEqual(t, l.Cap(), 32)
	assert.Equal(t, []int{1, 2}, l.View())
}

// TestList_ZeroSizeElement verifies struct{} lists track length only.
func TestList_ZeroSizeElement(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[struct{}](&a, 1)
	for range 10 {
		l.PushZero()
	}
	assert.Equal(t, 10, l.Len())
}

// TestList_StaleAfterClear verifies the use-after-clear guard.
func TestList_StaleAfterClear(t *testing.T) {
	var a arena.Arena
	defer a.Release()

	l := New[int](&a, 2)
	l.Push(1)
	a.Clear()

	assert.Panics(t, func() { l.Push(2) })
	assert.Panics(t, func() { l.View() })
}
