// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
)

// Restrictions constrain who may redeem a voucher and whose address the
// factory records as the initiator. Both fields are optional; presence is
// encoded with an explicit leading bit.
type Restrictions struct {
	ForceSender   *ids.ID `serialize:"true" json:"forceSender,omitempty"`
	RewriteSender *ids.ID `serialize:"true" json:"rewriteSender,omitempty"`
}

// Encode serializes the descriptor into a single cell.
func (r *Restrictions) Encode() (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreMaybeAddress(r.ForceSender); err != nil {
		return nil, err
	}
	if err := b.StoreMaybeAddress(r.RewriteSender); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// DecodeRestrictions parses a restrictions cell.
func DecodeRestrictions(c *cell.Cell) (*Restrictions, error) {
	s := c.Slice()
	force, err := s.LoadMaybeAddress()
	if err != nil {
		return nil, err
	}
	rewrite, err := s.LoadMaybeAddress()
	if err != nil {
		return nil, err
	}
	return &Restrictions{ForceSender: force, RewriteSender: rewrite}, nil
}
