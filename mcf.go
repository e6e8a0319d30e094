// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import "github.com/pkg/errors"

// mcfPeekBits is how many bits select a Match Count Field class.
const mcfPeekBits = 4

// matchClass is one row of the Match Count Field prefix code.
// A class matches when peeked&mask == pattern; then prefixBits are skipped and
// the match length is base + the next extraBits bits.
type matchClass struct {
	mask       uint16
	pattern    uint16
	prefixBits int
	base       int
	extraBits  int
	reserved   uint16 // Non-zero: extra&reserved == reserved collides with a control symbol.
}

// matchClasses is evaluated in order; the first matching row wins.
//
//	0x        -> 2..3
//	10xx      -> 4..7
//	110xxx    -> 8..15
//	1110xxxx  -> 16..31
//	1111x{8}  -> 32..271 (top nibble 1111 reserved)
var matchClasses = [...]matchClass{
	{mask: 0b1000, pattern: 0b0000, prefixBits: 1, base: 2, extraBits: 1},
	{mask: 0b1100, pattern: 0b1000, prefixBits: 2, base: 4, extraBits: 2},
	{mask: 0b1110, pattern: 0b1100, prefixBits: 3, base: 8, extraBits: 3},
	{mask: 0b1111, pattern: 0b1110, prefixBits: 4, base: 16, extraBits: 4},
	{mask: 0b1111, pattern: 0b1111, prefixBits: 4, base: 32, extraBits: 8, reserved: 0xF0},
}

// readMatchCount decodes the Match Count Field that follows a copy pointer flag bit.
func readMatchCount(r *bitReader) (int, error) {
	start := r.offset()

	next, err := r.peek(mcfPeekBits)
	if err != nil {
		return 0, errors.Wrap(err, "match count field")
	}

	for _, class := range matchClasses {
		if next&class.mask != class.pattern {
			continue
		}

		if err := r.skip(class.prefixBits); err != nil {
			return 0, errors.Wrap(err, "match count field")
		}
		extra, err := r.read(class.extraBits)
		if err != nil {
			return 0, errors.Wrap(err, "match count field")
		}
		if class.reserved != 0 && extra&class.reserved == class.reserved {
			return 0, errors.Wrapf(ErrReservedMatchCount, "match count field %#02x at bit %d", extra, start)
		}

		return class.base + int(extra), nil
	}

	// The table covers all 16 nibbles.
	return 0, errors.Errorf("invalid match count field %#x at bit %d", next, start)
}
