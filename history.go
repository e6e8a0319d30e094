// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import "github.com/pkg/errors"

// history is the circular window copy pointers read from.
// Every byte appended to the output is pushed here in the same step.
type history struct {
	buf [HistorySize]byte
	pos int // Next write slot.
}

// push stores c at the write slot and advances it modulo HistorySize.
func (h *history) push(c byte) {
	h.buf[h.pos] = c
	h.pos = (h.pos + 1) % HistorySize
}

// at returns the byte stored at absolute index i.
func (h *history) at(i int) (byte, error) {
	if i < 0 || i >= len(h.buf) {
		return 0, errors.Wrapf(ErrHistoryIndexOutOfRange, "index %d", i)
	}

	return h.buf[i], nil
}

// last returns the most recently pushed byte.
func (h *history) last() byte {
	return h.buf[(h.pos+HistorySize-1)%HistorySize]
}

// reset zero-fills the window and rewinds the write slot.
func (h *history) reset() {
	h.buf = [HistorySize]byte{}
	h.pos = 0
}
