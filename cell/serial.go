// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cell

import (
	"encoding/binary"
)

// maxTreeDepth bounds decoding recursion so a hostile payload cannot blow
// the stack.
const maxTreeDepth = 256

// Encode serializes a cell tree depth-first. Each node is written as a
// 2-byte big-endian bit length, a 1-byte reference count and the padded
// data bytes; children follow in order. The layout is self-describing and
// canonical.
func Encode(c *Cell) []byte {
	return appendCell(nil, c)
}

func appendCell(buf []byte, c *Cell) []byte {
	var hdr [3]byte
	binary.BigEndian.PutUint16(hdr[:2], uint16(c.bitLen))
	hdr[2] = byte(len(c.refs))
	buf = append(buf, hdr[:]...)
	buf = append(buf, c.data...)
	for _, r := range c.refs {
		buf = appendCell(buf, r)
	}
	return buf
}

// Decode parses bytes produced by Encode. Trailing garbage, oversized bit
// or reference counts and truncated nodes all fail with
// ErrMalformedEncoding; the decoder never guesses.
func Decode(b []byte) (*Cell, error) {
	c, rest, err := decodeCell(b, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrMalformedEncoding
	}
	return c, nil
}

func decodeCell(b []byte, depth int) (*Cell, []byte, error) {
	if depth > maxTreeDepth {
		return nil, nil, ErrMalformedEncoding
	}
	if len(b) < 3 {
		return nil, nil, ErrMalformedEncoding
	}
	bitLen := int(binary.BigEndian.Uint16(b[:2]))
	numRefs := int(b[2])
	if bitLen > MaxDataBits || numRefs > MaxRefs {
		return nil, nil, ErrMalformedEncoding
	}
	b = b[3:]

	n := (bitLen + 7) / 8
	if len(b) < n {
		return nil, nil, ErrMalformedEncoding
	}
	data := make([]byte, n)
	copy(data, b[:n])
	// Padding bits beyond bitLen must be zero or two distinct byte strings
	// could decode to the same logical cell.
	if bitLen&7 != 0 && n > 0 {
		if data[n-1]&(0xff>>uint(bitLen&7)) != 0 {
			return nil, nil, ErrMalformedEncoding
		}
	}
	b = b[n:]

	refs := make([]*Cell, 0, numRefs)
	for i := 0; i < numRefs; i++ {
		child, rest, err := decodeCell(b, depth+1)
		if err != nil {
			return nil, nil, err
		}
		refs = append(refs, child)
		b = rest
	}
	return &Cell{data: data, bitLen: bitLen, refs: refs}, b, nil
}
