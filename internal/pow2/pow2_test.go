package pow2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign(t *testing.T) {
	cases := []struct {
		v, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{17, 16, 32},
		{100, 1, 100},
		{5, 4, 8},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Align(tc.v, tc.align), "Align(%d, %d)", tc.v, tc.align)
	}
}

func TestIsPow2(t *testing.T) {
	for _, v := range []uintptr{1, 2, 4, 4096, 1 << 30} {
		assert.True(t, IsPow2(v), "%d", v)
	}
	for _, v := range []uintptr{0, 3, 6, 4097, 1<<30 + 1} {
		assert.False(t, IsPow2(v), "%d", v)
	}
}

func TestCeil(t *testing.T) {
	cases := []struct {
		v, floor, want uintptr
	}{
		{0, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{3, 1, 4},
		{100 << 20, 4096, 128 << 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Ceil(tc.v, tc.floor), "Ceil(%d, %d)", tc.v, tc.floor)
	}
}

func TestCeil_Overflow(t *testing.T) {
	assert.Zero(t, Ceil(^uintptr(0)-1, 4096))
}
