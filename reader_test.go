// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitReaderSequence(t *testing.T) {
	r := newBitReader([]byte{0b10101001, 0b01011100})
	assert.Equal(t, 16, r.remaining())

	hi, err := r.readBool()
	require.NoError(t, err)
	assert.True(t, hi)

	mid, err := r.read(3)
	require.NoError(t, err)
	assert.Equal(t, uint16(0b010), mid)

	lo, err := r.read(4)
	require.NoError(t, err)
	assert.Equal(t, uint16(0b1001), lo)

	peeked, err := r.peek(8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5C), peeked)
	assert.Equal(t, 8, r.offset(), "peek must not advance")

	v, err := r.read(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(0b01011), v)
	assert.Equal(t, 3, r.remaining())
	assert.Equal(t, 2, r.consumedBytes())

	require.ErrorIs(t, r.skip(4), ErrOutOfData)
	assert.Equal(t, 13, r.offset(), "failed skip must not advance")

	require.NoError(t, r.skip(3))
	assert.Equal(t, 0, r.remaining())

	_, err = r.read(1)
	require.ErrorIs(t, err, ErrOutOfData)
}

func TestBitReaderUnalignedWide(t *testing.T) {
	r := newBitReader([]byte{0xFF, 0x00, 0xFF})
	require.NoError(t, r.skip(4))

	v, err := r.read(16)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xF00F), v)
	assert.Equal(t, 4, r.remaining())

	_, err = r.peek(5)
	require.ErrorIs(t, err, ErrOutOfData)

	b, err := r.peek(4)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xF), b)
}

func TestBitReaderReadByte(t *testing.T) {
	r := newBitReader([]byte{0x0A, 0xB0})
	require.NoError(t, r.skip(4))

	b, err := r.readByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)
}

func TestBitReaderInvalidCount(t *testing.T) {
	r := newBitReader([]byte{0xFF, 0xFF, 0xFF})

	for _, n := range []int{0, -1, 17} {
		_, err := r.peek(n)
		require.ErrorIs(t, err, ErrInvalidBitCount, "peek(%d)", n)
	}
	require.ErrorIs(t, r.skip(-1), ErrInvalidBitCount)
	assert.Equal(t, 0, r.offset())
}

func TestBitReaderEmpty(t *testing.T) {
	r := newBitReader(nil)
	assert.Equal(t, 0, r.remaining())
	assert.Equal(t, 0, r.consumedBytes())

	_, err := r.peek(1)
	require.ErrorIs(t, err, ErrOutOfData)
}
