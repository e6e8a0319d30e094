// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import "fmt"

// SLDC (ECMA-321) format constants.
const (
	HistorySize       = 1024  // Circular history buffer size.
	ControlPrefix     = 0x1FF // Nine set bits that start every control symbol.
	ControlPrefixBits = 9     // Width of ControlPrefix.
	ControlSymbolBits = 13    // Prefix plus 4-bit selector.
	LiteralBits       = 8     // Data byte width in both schemes.
	DisplacementBits  = 10    // Copy pointer displacement width (absolute history index).
	StuffedByte       = 0xFF  // Scheme 2 byte followed by one stuffing bit.
)

// ControlSymbol is a 13-bit out-of-band marker (ControlPrefix + 4-bit selector).
type ControlSymbol uint16

// Control symbols defined by ECMA-321.
const (
	ControlFlush       ControlSymbol = 0b1111111110000
	ControlScheme1     ControlSymbol = 0b1111111110001
	ControlScheme2     ControlSymbol = 0b1111111110010
	ControlFileMark    ControlSymbol = 0b1111111110011
	ControlEndOfRecord ControlSymbol = 0b1111111110100
	ControlReset1      ControlSymbol = 0b1111111110101
	ControlReset2      ControlSymbol = 0b1111111110110
	ControlEndMarker   ControlSymbol = 0b1111111111111
)

// String returns the ECMA-321 name of the control symbol.
func (s ControlSymbol) String() string {
	switch s {
	case ControlFlush:
		return "FLUSH"
	case ControlScheme1:
		return "SCHEME_1"
	case ControlScheme2:
		return "SCHEME_2"
	case ControlFileMark:
		return "FILE_MARK"
	case ControlEndOfRecord:
		return "END_OF_RECORD"
	case ControlReset1:
		return "RESET_1"
	case ControlReset2:
		return "RESET_2"
	case ControlEndMarker:
		return "END_MARKER"
	default:
		return fmt.Sprintf("unknown(%#04x)", uint16(s))
	}
}
