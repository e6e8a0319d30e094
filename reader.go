// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import "github.com/pkg/errors"

// maxPeekBits is the widest field a single peek or read may return.
const maxPeekBits = 16

// bitReader reads bits MSB-first from a byte slice.
// Bit 0 is the most significant bit of data[0].
type bitReader struct {
	data []byte // The byte slice to read from.
	pos  int    // Index of the next unread bit.
}

// newBitReader returns a reader positioned at the first bit of data.
func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// remaining returns the number of unread bits.
func (r *bitReader) remaining() int {
	return len(r.data)*8 - r.pos
}

// offset returns the index of the next unread bit.
func (r *bitReader) offset() int {
	return r.pos
}

// consumedBytes returns the number of bytes touched so far, counting a partial byte as whole.
func (r *bitReader) consumedBytes() int {
	return (r.pos + 7) / 8
}

// peek returns the next n bits without advancing the cursor.
func (r *bitReader) peek(n int) (uint16, error) {
	if n < 1 || n > maxPeekBits {
		return 0, errors.Wrapf(ErrInvalidBitCount, "peek %d bits", n)
	}
	if r.remaining() < n {
		return 0, errors.Wrapf(ErrOutOfData, "need %d bits at bit %d, have %d", n, r.pos, r.remaining())
	}

	// Load up to 3 bytes: shift (<= 7) + n (<= 16) never exceeds 24 bits.
	idx := r.pos >> 3
	var acc uint32
	for i := 0; i < 3; i++ {
		acc <<= 8
		if idx+i < len(r.data) {
			acc |= uint32(r.data[idx+i])
		}
	}
	acc <<= 8 + uint(r.pos&7)

	return uint16(acc >> (32 - uint(n))), nil
}

// read returns the next n bits and advances the cursor.
func (r *bitReader) read(n int) (uint16, error) {
	v, err := r.peek(n)
	if err != nil {
		return 0, err
	}
	r.pos += n

	return v, nil
}

// readByte returns the next 8 bits as a byte.
func (r *bitReader) readByte() (byte, error) {
	v, err := r.read(LiteralBits)
	if err != nil {
		return 0, err
	}

	return byte(v), nil
}

// readBool returns the next bit as a boolean.
func (r *bitReader) readBool() (bool, error) {
	v, err := r.read(1)
	if err != nil {
		return false, err
	}

	return v == 1, nil
}

// skip advances the cursor by n bits.
func (r *bitReader) skip(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidBitCount, "skip %d bits", n)
	}
	if r.remaining() < n {
		return errors.Wrapf(ErrOutOfData, "skip %d bits at bit %d, have %d", n, r.pos, r.remaining())
	}
	r.pos += n

	return nil
}
