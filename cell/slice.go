// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cell

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"
)

// Slice is a forward-only reader over a cell's bits and references.
type Slice struct {
	cell   *Cell
	bitPos int
	refPos int
}

// BitsRemaining returns the number of unread data bits.
func (s *Slice) BitsRemaining() int { return s.cell.bitLen - s.bitPos }

// RefsRemaining returns the number of unread references.
func (s *Slice) RefsRemaining() int { return len(s.cell.refs) - s.refPos }

// LoadBit reads a single bit.
func (s *Slice) LoadBit() (bool, error) {
	if s.bitPos >= s.cell.bitLen {
		return false, ErrCellUnderflow
	}
	v := s.cell.data[s.bitPos>>3]>>(7-uint(s.bitPos&7))&1 == 1
	s.bitPos++
	return v, nil
}

// LoadUint reads [size] bits as a big-endian unsigned integer.
func (s *Slice) LoadUint(size int) (uint64, error) {
	if size < 0 || size > 64 {
		return 0, ErrInvalidBitSize
	}
	if s.BitsRemaining() < size {
		return 0, ErrCellUnderflow
	}
	var v uint64
	for i := 0; i < size; i++ {
		bit, err := s.LoadBit()
		if err != nil {
			return 0, err
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

// LoadBytes reads n raw bytes.
func (s *Slice) LoadBytes(n int) ([]byte, error) {
	if s.BitsRemaining() < n*8 {
		return nil, ErrCellUnderflow
	}
	p := make([]byte, n)
	for i := range p {
		v, err := s.LoadUint(8)
		if err != nil {
			return nil, err
		}
		p[i] = byte(v)
	}
	return p, nil
}

// LoadCoins reads an amount written by Builder.StoreCoins.
func (s *Slice) LoadCoins() (*big.Int, error) {
	n, err := s.LoadUint(coinLenBits)
	if err != nil {
		return nil, err
	}
	raw, err := s.LoadBytes(int(n))
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

// LoadAddress reads a 256-bit ledger address.
func (s *Slice) LoadAddress() (ids.ID, error) {
	raw, err := s.LoadBytes(32)
	if err != nil {
		return ids.Empty, err
	}
	return ids.ToID(raw)
}

// LoadMaybeAddress reads a presence bit and, when set, the address.
func (s *Slice) LoadMaybeAddress() (*ids.ID, error) {
	present, err := s.LoadBit()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	addr, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// LoadRef reads the next child reference.
func (s *Slice) LoadRef() (*Cell, error) {
	if s.refPos >= len(s.cell.refs) {
		return nil, ErrCellUnderflow
	}
	c := s.cell.refs[s.refPos]
	s.refPos++
	return c, nil
}

// LoadMaybeRef reads a presence bit and, when set, the next reference.
func (s *Slice) LoadMaybeRef() (*Cell, error) {
	present, err := s.LoadBit()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return s.LoadRef()
}
