/*
Package sldc implements ECMA-321 Streaming Lossless Data Compression decoding.

SLDC is the compression Windows Event Forwarding clients may apply to event
payloads before sending them to a collector. Only the decode direction is
implemented.

Format: a bitstream read MSB-first. Control symbols are 13 bits: nine set bits
followed by a 4-bit selector (FLUSH, SCHEME_1, SCHEME_2, FILE_MARK,
END_OF_RECORD, RESET_1, RESET_2, END_MARKER).
Scheme 1: flag bit 0 = literal (8 bits), flag bit 1 = copy pointer
(Match Count Field 2..271 bytes, then a 10-bit absolute history index).
Scheme 2: plain 8-bit literals; 0xFF is followed by one stuffing bit.
History: 1024-byte circular window, zero-filled by RESET_1 and RESET_2.
A record ends at END_OF_RECORD; anything after it is ignored.

Use Decompress(src, opts) with nil for default options (no output limit).
Use DecompressBlock(src, opts) to also get the number of bytes the record used.
Use DecompressFromReader(r, opts) to decode everything r yields.
Set Options.MaxOutputSize to bound the decompressed size of untrusted input.

Each call owns its state, so concurrent calls on independent inputs are safe.

# Examples

Decompress with default options:

	out, err := sldc.Decompress(payload, nil)
	if err != nil {
		return err
	}

Decompress untrusted input with a size cap:

	out, err := sldc.Decompress(payload, &sldc.Options{MaxOutputSize: 16 << 20})
	if errors.Is(err, sldc.ErrOutputTooLarge) {
		// drop the record
	}

Decode a record and continue after it:

	out, consumed, err := sldc.DecompressBlock(buf, nil)
	if err != nil {
		return err
	}
	rest := buf[consumed:]
*/
package sldc
