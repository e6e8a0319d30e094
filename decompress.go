// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Decompress decodes one SLDC record from src.
// Options nil means DefaultOptions. Bits after END_OF_RECORD are ignored.
func Decompress(src []byte, opts *Options) ([]byte, error) {
	out, _, err := DecompressBlock(src, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DecompressBlock decodes one SLDC record from the beginning of src.
// It returns the decompressed bytes and the number of consumed bytes: the
// position right after END_OF_RECORD, rounded up to a whole byte.
func DecompressBlock(src []byte, opts *Options) ([]byte, int, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	log := opts.logger()
	log.WithField("compressed", len(src)).Debug("try to decompress sldc data")

	d := &decoder{
		r:     newBitReader(src),
		out:   make([]byte, 0, len(src)),
		limit: opts.MaxOutputSize,
		log:   log,
	}
	if err := d.run(); err != nil {
		return nil, d.r.consumedBytes(), err
	}

	log.WithFields(logrus.Fields{
		"compressed":   len(src),
		"consumed":     d.r.consumedBytes(),
		"decompressed": len(d.out),
	}).Debug("sldc decompression succeeded")

	return d.out, d.r.consumedBytes(), nil
}

// DecompressFromReader reads r to EOF and decodes the SLDC record it holds.
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read compressed data")
	}

	return Decompress(src, opts)
}

// decoder holds the state of one decode call. Nothing is shared between calls.
type decoder struct {
	r    *bitReader
	hist history
	out  []byte
	log  logrus.FieldLogger

	// Both may be set; scheme 1 is checked first.
	scheme1 bool
	scheme2 bool

	limit int // 0 = unlimited.
}

// run decodes symbols until END_OF_RECORD or the input is exhausted.
func (d *decoder) run() error {
	for d.r.remaining() > 0 {
		// Too few bits left for a control symbol: END_OF_RECORD cannot follow.
		if d.r.remaining() < ControlPrefixBits {
			break
		}

		prefix, err := d.r.peek(ControlPrefixBits)
		if err != nil {
			return err
		}

		if prefix == ControlPrefix {
			done, err := d.control()
			if err != nil {
				return err
			}
			if done {
				return nil
			}

			continue
		}

		switch {
		case d.scheme1:
			err = d.scheme1Symbol()
		case d.scheme2:
			err = d.scheme2Symbol()
		default:
			return errors.Wrapf(ErrUndecodableStream, "at bit %d", d.r.offset())
		}
		if err != nil {
			return err
		}
	}

	return errors.Wrapf(ErrMissingEndOfRecord, "input exhausted at bit %d", d.r.offset())
}

// control consumes a control symbol and applies it. done reports END_OF_RECORD.
func (d *decoder) control() (done bool, err error) {
	start := d.r.offset()

	v, err := d.r.read(ControlSymbolBits)
	if err != nil {
		return false, errors.Wrap(err, "control symbol")
	}

	switch symbol := ControlSymbol(v); symbol {
	case ControlFlush, ControlFileMark, ControlEndMarker:
	case ControlScheme1:
		d.scheme1 = true
	case ControlScheme2:
		d.scheme2 = true
	case ControlEndOfRecord:
		return true, nil
	case ControlReset1, ControlReset2:
		if symbol == ControlReset1 {
			d.scheme1 = true
		} else {
			d.scheme2 = true
		}
		d.hist.reset()
		d.log.WithFields(logrus.Fields{
			"symbol": symbol.String(),
			"bit":    start,
		}).Debug("sldc history reset")
	default:
		return false, errors.Wrapf(ErrInvalidControlSymbol, "%#04x at bit %d", v, start)
	}

	return false, nil
}

// scheme1Symbol decodes a Literal 1 or a Copy Pointer data symbol.
func (d *decoder) scheme1Symbol() error {
	isCopy, err := d.r.readBool()
	if err != nil {
		return errors.Wrap(err, "scheme 1 flag")
	}

	if !isCopy {
		c, err := d.r.readByte()
		if err != nil {
			return errors.Wrap(err, "literal 1")
		}

		return d.emit(c)
	}

	length, err := readMatchCount(d.r)
	if err != nil {
		return err
	}
	displacement, err := d.r.read(DisplacementBits)
	if err != nil {
		return errors.Wrap(err, "displacement field")
	}

	// Byte by byte: the copy may read bytes it has just written (run-length style).
	for k := 0; k < length; k++ {
		c, err := d.hist.at((int(displacement) + k) % HistorySize)
		if err != nil {
			return err
		}
		if err := d.emit(c); err != nil {
			return err
		}
	}

	return nil
}

// scheme2Symbol decodes a Literal 2 data symbol, dropping the stuffing bit after 0xFF.
func (d *decoder) scheme2Symbol() error {
	c, err := d.r.readByte()
	if err != nil {
		return errors.Wrap(err, "literal 2")
	}
	if c == StuffedByte {
		if err := d.r.skip(1); err != nil {
			return errors.Wrap(err, "stuffing bit")
		}
	}

	return d.emit(c)
}

// emit appends c to the output and the history window.
func (d *decoder) emit(c byte) error {
	if d.limit > 0 && len(d.out) >= d.limit {
		return errors.Wrapf(ErrOutputTooLarge, "limit %d bytes", d.limit)
	}

	d.out = append(d.out, c)
	d.hist.push(c)

	return nil
}
