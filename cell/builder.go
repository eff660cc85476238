// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cell

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"
)

const (
	// coinLenBits is the size of the byte-length prefix of a coin amount.
	coinLenBits = 4

	// MaxCoinBytes bounds the magnitude of an encodable amount (u120 range).
	MaxCoinBytes = 15
)

// Builder accumulates bits and references for a single cell. All Store
// methods fail without partial writes once capacity would be exceeded.
type Builder struct {
	data   [maxDataBytes + 8]byte
	bitLen int
	refs   []*Cell
}

// NewBuilder returns an empty cell builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BitLen returns the number of bits stored so far.
func (b *Builder) BitLen() int { return b.bitLen }

// StoreBit appends a single bit.
func (b *Builder) StoreBit(v bool) error {
	if b.bitLen+1 > MaxDataBits {
		return ErrCellOverflow
	}
	if v {
		b.data[b.bitLen>>3] |= 1 << (7 - uint(b.bitLen&7))
	}
	b.bitLen++
	return nil
}

// StoreUint appends the low [size] bits of v, most significant bit first.
func (b *Builder) StoreUint(v uint64, size int) error {
	if size < 0 || size > 64 {
		return ErrInvalidBitSize
	}
	if b.bitLen+size > MaxDataBits {
		return ErrCellOverflow
	}
	for i := size - 1; i >= 0; i-- {
		if err := b.StoreBit(v>>uint(i)&1 == 1); err != nil {
			return err
		}
	}
	return nil
}

// StoreBytes appends raw bytes (8 bits each, in order).
func (b *Builder) StoreBytes(p []byte) error {
	if b.bitLen+len(p)*8 > MaxDataBits {
		return ErrCellOverflow
	}
	for _, v := range p {
		if err := b.StoreUint(uint64(v), 8); err != nil {
			return err
		}
	}
	return nil
}

// StoreCoins appends an amount as a 4-bit byte length followed by the
// big-endian magnitude. Zero encodes as length 0.
func (b *Builder) StoreCoins(v *big.Int) error {
	if v == nil {
		return ErrAmountNil
	}
	if v.Sign() < 0 {
		return ErrAmountNegative
	}
	raw := v.Bytes()
	if len(raw) > MaxCoinBytes {
		return ErrAmountTooLarge
	}
	if b.bitLen+coinLenBits+len(raw)*8 > MaxDataBits {
		return ErrCellOverflow
	}
	if err := b.StoreUint(uint64(len(raw)), coinLenBits); err != nil {
		return err
	}
	return b.StoreBytes(raw)
}

// StoreAddress appends a 256-bit ledger address.
func (b *Builder) StoreAddress(addr ids.ID) error {
	return b.StoreBytes(addr[:])
}

// StoreMaybeAddress appends a presence bit and, when set, the address.
func (b *Builder) StoreMaybeAddress(addr *ids.ID) error {
	if addr == nil {
		return b.StoreBit(false)
	}
	if b.bitLen+1+256 > MaxDataBits {
		return ErrCellOverflow
	}
	if err := b.StoreBit(true); err != nil {
		return err
	}
	return b.StoreAddress(*addr)
}

// StoreRef appends a child cell reference.
func (b *Builder) StoreRef(c *Cell) error {
	if len(b.refs) >= MaxRefs {
		return ErrTooManyRefs
	}
	b.refs = append(b.refs, c)
	return nil
}

// StoreMaybeRef appends a presence bit and, when set, the reference.
func (b *Builder) StoreMaybeRef(c *Cell) error {
	if c == nil {
		return b.StoreBit(false)
	}
	if len(b.refs) >= MaxRefs {
		return ErrTooManyRefs
	}
	if err := b.StoreBit(true); err != nil {
		return err
	}
	return b.StoreRef(c)
}

// Build freezes the accumulated contents into an immutable cell.
func (b *Builder) Build() *Cell {
	n := (b.bitLen + 7) / 8
	data := make([]byte, n)
	copy(data, b.data[:n])
	refs := make([]*Cell, len(b.refs))
	copy(refs, b.refs)
	return &Cell{data: data, bitLen: b.bitLen, refs: refs}
}
