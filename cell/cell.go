// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cell implements the canonical bit-packed tree encoding used for
// every signable structure. A given logical value always produces the same
// bit layout, so digests and signatures are stable across encoders.
package cell

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

const (
	// MaxDataBits is the data capacity of a single cell.
	MaxDataBits = 1023

	// MaxRefs is the reference capacity of a single cell.
	MaxRefs = 4

	maxDataBytes = (MaxDataBits + 7) / 8
)

// Cell is an immutable node of a canonical encoding tree. Build one with a
// Builder; read one back with Slice.
type Cell struct {
	data   []byte
	bitLen int
	refs   []*Cell

	digest []byte
}

// BitLen returns the number of data bits stored in the cell.
func (c *Cell) BitLen() int { return c.bitLen }

// NumRefs returns the number of child references.
func (c *Cell) NumRefs() int { return len(c.refs) }

// Ref returns the i-th child cell.
func (c *Cell) Ref(i int) *Cell { return c.refs[i] }

// Slice returns a reader positioned at the start of the cell.
func (c *Cell) Slice() *Slice {
	return &Slice{cell: c}
}

// Digest returns the canonical sha3-256 digest of the cell tree. The digest
// covers bit length, reference count, padded data and child digests, so any
// change anywhere in the tree changes the root digest.
func (c *Cell) Digest() []byte {
	if c.digest != nil {
		return c.digest
	}
	pre := make([]byte, 0, 3+len(c.data)+len(c.refs)*32)
	var hdr [3]byte
	binary.BigEndian.PutUint16(hdr[:2], uint16(c.bitLen))
	hdr[2] = byte(len(c.refs))
	pre = append(pre, hdr[:]...)
	pre = append(pre, c.data...)
	for _, r := range c.refs {
		pre = append(pre, r.Digest()...)
	}
	h := sha3.Sum256(pre)
	c.digest = h[:]
	return c.digest
}

// Equal reports whether two cell trees are identical bit for bit.
func (c *Cell) Equal(o *Cell) bool {
	if c == nil || o == nil {
		return c == o
	}
	return bytes.Equal(c.Digest(), o.Digest())
}
