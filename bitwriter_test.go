// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// bitWriter builds SLDC streams for tests, MSB-first, zero-padded to a byte.
type bitWriter struct {
	buf []byte
	acc byte
	n   uint
}

func (w *bitWriter) bits(v uint64, n uint) *bitWriter {
	for i := int(n) - 1; i >= 0; i-- {
		w.acc = w.acc<<1 | byte((v>>uint(i))&1)
		w.n++
		if w.n == 8 {
			w.buf = append(w.buf, w.acc)
			w.acc, w.n = 0, 0
		}
	}

	return w
}

func (w *bitWriter) control(s ControlSymbol) *bitWriter {
	return w.bits(uint64(s), ControlSymbolBits)
}

// literal1 writes a scheme 1 literal: flag 0 then the byte.
func (w *bitWriter) literal1(c byte) *bitWriter {
	return w.bits(0, 1).bits(uint64(c), LiteralBits)
}

// literal2 writes a scheme 2 literal with its stuffing bit when needed.
func (w *bitWriter) literal2(c byte) *bitWriter {
	w.bits(uint64(c), LiteralBits)
	if c == StuffedByte {
		w.bits(0, 1)
	}

	return w
}

// copyPointer writes flag 1, a raw match count field and the displacement.
func (w *bitWriter) copyPointer(mcf uint64, mcfBits uint, displacement uint64) *bitWriter {
	return w.bits(1, 1).bits(mcf, mcfBits).bits(displacement, DisplacementBits)
}

func (w *bitWriter) bytes() []byte {
	out := append([]byte(nil), w.buf...)
	if w.n > 0 {
		out = append(out, w.acc<<(8-w.n))
	}

	return out
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)

	return b
}

func loadHexFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return mustHex(t, string(data))
}
