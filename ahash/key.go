package ahash

import (
	"bytes"
	"unsafe"
)

// KeyKind selects how a table hashes and compares item keys.
type KeyKind uint8

const (
	// KeyOpaque treats the key as a fixed-size piece of data, hashed and
	// compared verbatim. A pointer-typed key compares by address, which is
	// the right choice for interned strings.
	KeyOpaque KeyKind = iota

	// KeyString treats the key as a string, hashed and compared by its
	// contents. The contents must not change while the item is in a table.
	KeyString

	// KeyBytes treats the key as a byte slice, hashed and compared by the
	// referenced data. The data must not change while the item is in a
	// table.
	KeyBytes
)

// keyView is a borrowed view of one item's key.
type keyView struct {
	str string // KeyString
	b   []byte // KeyOpaque, KeyBytes
}

// KeySpec describes how a table extracts, hashes, and compares the key
// embedded in an item of type T. Build one with OpaqueKey, StringKey, or
// BytesKey.
type KeySpec[T any] struct {
	kind KeyKind
	size uintptr
	view func(*T) keyView
}

// Kind returns the key kind this KeySpec selects.
func (k KeySpec[T]) Kind() KeyKind {
	return k.kind
}

// KeySize returns the fixed key width in bytes for KeyOpaque specs, and the
// size of the key descriptor for the other kinds.
func (k KeySpec[T]) KeySize() uintptr {
	return k.size
}

// OpaqueKey builds a KeySpec for a fixed-size key field, located by the
// given accessor. The key is hashed and compared by its in-memory bytes, so
// K should not contain padding.
func OpaqueKey[T any, K comparable](field func(*T) *K) KeySpec[T] {
	var zero K
	size := unsafe.Sizeof(zero)
	return KeySpec[T]{
		kind: KeyOpaque,
		size: size,
		view: func(item *T) keyView {
			return keyView{b: unsafe.Slice((*byte)(unsafe.Pointer(field(item))), size)}
		},
	}
}

// StringKey builds a KeySpec for a string key field, located by the given
// accessor. Items are hashed and compared by the string contents, not by the
// string header.
func StringKey[T any](field func(*T) *string) KeySpec[T] {
	return KeySpec[T]{
		kind: KeyString,
		size: unsafe.Sizeof(""),
		view: func(item *T) keyView {
			return keyView{str: *field(item)}
		},
	}
}

// BytesKey builds a KeySpec for a byte-slice key field, located by the given
// accessor. Items are hashed and compared by the referenced data.
func BytesKey[T any](field func(*T) *[]byte) KeySpec[T] {
	return KeySpec[T]{
		kind: KeyBytes,
		size: unsafe.Sizeof([]byte(nil)),
		view: func(item *T) keyView {
			return keyView{b: *field(item)}
		},
	}
}

func (t *Table[T]) hashView(v keyView) uint32 {
	if t.key.kind == KeyString {
		return t.arena.HashString(v.str)
	}
	return t.arena.HashBytes(v.b)
}

func equalView(kind KeyKind, a, b keyView) bool {
	if kind == KeyString {
		return a.str == b.str
	}
	return bytes.Equal(a.b, b.b)
}
