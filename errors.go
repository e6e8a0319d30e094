// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import "github.com/pkg/errors"

// Package errors. Every decode failure wraps one of these with the bit offset
// where it happened; match them with errors.Is.
var (
	ErrOutOfData              = errors.New("unexpected end of sldc bitstream")
	ErrInvalidControlSymbol   = errors.New("invalid control symbol")
	ErrReservedMatchCount     = errors.New("reserved or control symbol found instead of copy pointer")
	ErrHistoryIndexOutOfRange = errors.New("history buffer index out of range")
	ErrUndecodableStream      = errors.New("data symbol found before any compression scheme was selected")
	ErrMissingEndOfRecord     = errors.New("missing END_OF_RECORD control symbol")
	ErrOutputTooLarge         = errors.New("decompressed output exceeds limit")
	ErrInvalidBitCount        = errors.New("bit count must be between 1 and 16")
	ErrNilReader              = errors.New("reader is nil")
)
