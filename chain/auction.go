// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
)

// AuctionConfig describes the auction an item runs once minted. A config
// with MaxBid == InitialMinBid and DurationSeconds == 0 is a direct sale
// that completes on the first qualifying payment.
type AuctionConfig struct {
	Beneficiary       ids.ID   `serialize:"true" json:"beneficiary"`
	InitialMinBid     *big.Int `serialize:"true" json:"initialMinBid"`
	MaxBid            *big.Int `serialize:"true" json:"maxBid"` // zero = unbounded
	MinBidStepPercent uint8    `serialize:"true" json:"minBidStepPercent"`
	MinExtendSeconds  uint32   `serialize:"true" json:"minExtendSeconds"`
	DurationSeconds   uint32   `serialize:"true" json:"durationSeconds"`
}

// Verify returns an error if the config cannot be encoded or run.
func (a *AuctionConfig) Verify() error {
	if a.MinBidStepPercent < 1 {
		return ErrInvalidBidStep
	}
	if a.InitialMinBid == nil || a.InitialMinBid.Sign() <= 0 {
		return ErrMissingAmount
	}
	if a.MaxBid == nil {
		return ErrMissingAmount
	}
	return nil
}

// IsDirectSale reports whether the config degenerates into an instant sale.
func (a *AuctionConfig) IsDirectSale() bool {
	return a.DurationSeconds == 0 && a.MaxBid.Sign() > 0 && a.MaxBid.Cmp(a.InitialMinBid) == 0
}

// MinimumNextBid returns the smallest acceptable bid after prev. A nil or
// zero prev means no bid has been placed yet.
func (a *AuctionConfig) MinimumNextBid(prev *big.Int) *big.Int {
	if prev == nil || prev.Sign() == 0 {
		return new(big.Int).Set(a.InitialMinBid)
	}
	step := new(big.Int).Mul(prev, big.NewInt(100+int64(a.MinBidStepPercent)))
	step.Div(step, big.NewInt(100))
	if step.Cmp(a.InitialMinBid) < 0 {
		return new(big.Int).Set(a.InitialMinBid)
	}
	return step
}

// Encode serializes the config into a single cell.
func (a *AuctionConfig) Encode() (*cell.Cell, error) {
	if err := a.Verify(); err != nil {
		return nil, err
	}
	b := cell.NewBuilder()
	if err := b.StoreAddress(a.Beneficiary); err != nil {
		return nil, err
	}
	if err := b.StoreCoins(a.InitialMinBid); err != nil {
		return nil, err
	}
	if err := b.StoreCoins(a.MaxBid); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(a.MinBidStepPercent), 8); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(a.MinExtendSeconds), 32); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(a.DurationSeconds), 32); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// DecodeAuctionConfig parses a config cell.
func DecodeAuctionConfig(c *cell.Cell) (*AuctionConfig, error) {
	s := c.Slice()
	beneficiary, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	minBid, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	maxBid, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	step, err := s.LoadUint(8)
	if err != nil {
		return nil, err
	}
	extend, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	duration, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	a := &AuctionConfig{
		Beneficiary:       beneficiary,
		InitialMinBid:     minBid,
		MaxBid:            maxBid,
		MinBidStepPercent: uint8(step),
		MinExtendSeconds:  uint32(extend),
		DurationSeconds:   uint32(duration),
	}
	if err := a.Verify(); err != nil {
		return nil, err
	}
	return a, nil
}
