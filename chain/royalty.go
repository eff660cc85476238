// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
)

const maxRoyaltyPart = 65535

// RoyaltyParams describes the fraction of auction proceeds routed to a
// royalty destination.
type RoyaltyParams struct {
	Numerator   uint16 `serialize:"true" json:"numerator"`
	Denominator uint16 `serialize:"true" json:"denominator"`
	Destination ids.ID `serialize:"true" json:"destination"`
}

// NewRoyaltyParams validates the fraction bounds and builds the descriptor.
func NewRoyaltyParams(numerator, denominator int, destination ids.ID) (*RoyaltyParams, error) {
	if numerator < 0 || numerator > maxRoyaltyPart {
		return nil, ErrInvalidRoyalty
	}
	if denominator < 0 || denominator > maxRoyaltyPart {
		return nil, ErrInvalidRoyalty
	}
	if denominator == 0 && numerator != 0 {
		return nil, ErrInvalidRoyalty
	}
	return &RoyaltyParams{
		Numerator:   uint16(numerator),
		Denominator: uint16(denominator),
		Destination: destination,
	}, nil
}

// Verify returns an error if the fraction is unusable.
func (r *RoyaltyParams) Verify() error {
	if r.Denominator == 0 && r.Numerator != 0 {
		return ErrInvalidRoyalty
	}
	return nil
}

// Cut returns the royalty share of amount, rounded down. A zero fraction
// yields zero.
func (r *RoyaltyParams) Cut(amount *big.Int) *big.Int {
	if r == nil || r.Numerator == 0 || r.Denominator == 0 {
		return new(big.Int)
	}
	cut := new(big.Int).Mul(amount, big.NewInt(int64(r.Numerator)))
	return cut.Div(cut, big.NewInt(int64(r.Denominator)))
}

// Encode serializes the descriptor into a single cell.
func (r *RoyaltyParams) Encode() (*cell.Cell, error) {
	if err := r.Verify(); err != nil {
		return nil, err
	}
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(r.Numerator), 16); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(r.Denominator), 16); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(r.Destination); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// DecodeRoyaltyParams parses a royalty cell.
func DecodeRoyaltyParams(c *cell.Cell) (*RoyaltyParams, error) {
	s := c.Slice()
	num, err := s.LoadUint(16)
	if err != nil {
		return nil, err
	}
	den, err := s.LoadUint(16)
	if err != nil {
		return nil, err
	}
	dest, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	r := &RoyaltyParams{Numerator: uint16(num), Denominator: uint16(den), Destination: dest}
	if err := r.Verify(); err != nil {
		return nil, err
	}
	return r, nil
}
