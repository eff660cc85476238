// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/parser"
)

// ItemInit is the factory → item initialization message. The item accepts
// only its first init as authoritative; everything the item ever knows
// about itself arrives in this message.
type ItemInit struct {
	Index    ids.ID `serialize:"true" json:"index"`
	CodeHash ids.ID `serialize:"true" json:"codeHash"`

	// Initiator is the minting party, possibly rewritten by the voucher's
	// sender restrictions. It places the opening bid.
	Initiator ids.ID `serialize:"true" json:"initiator"`

	// Reserve is withheld from the forwarded value for the item's own
	// storage rent; only the remainder counts as the opening bid.
	Reserve *big.Int `serialize:"true" json:"reserve"`

	Name          string         `serialize:"true" json:"name"`
	Content       *ContentData   `serialize:"true" json:"content"`
	AuctionConfig *AuctionConfig `serialize:"true" json:"auctionConfig"`
	RoyaltyParams *RoyaltyParams `serialize:"true" json:"royaltyParams,omitempty"`
}

// Encode builds the full init message body, opcode included.
func (d *ItemInit) Encode() (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(OpItemDeploy), 32); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(d.Index); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(d.CodeHash); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(d.Initiator); err != nil {
		return nil, err
	}
	reserve := d.Reserve
	if reserve == nil {
		reserve = new(big.Int)
	}
	if err := b.StoreCoins(reserve); err != nil {
		return nil, err
	}

	name := []byte(d.Name)
	if len(name) > parser.MaxNameSize {
		return nil, parser.ErrInvalidName
	}
	nb := cell.NewBuilder()
	if err := nb.StoreUint(uint64(len(name)), 8); err != nil {
		return nil, err
	}
	if err := nb.StoreBytes(name); err != nil {
		return nil, err
	}
	if err := b.StoreRef(nb.Build()); err != nil {
		return nil, err
	}

	content, err := d.Content.Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(content); err != nil {
		return nil, err
	}
	auction, err := d.AuctionConfig.Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(auction); err != nil {
		return nil, err
	}
	var royalty *cell.Cell
	if d.RoyaltyParams != nil {
		if royalty, err = d.RoyaltyParams.Encode(); err != nil {
			return nil, err
		}
	}
	if err := b.StoreMaybeRef(royalty); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// ParseItemInit reads an init body slice positioned just past the opcode.
func ParseItemInit(s *cell.Slice) (*ItemInit, error) {
	index, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	codeHash, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	initiator, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	reserve, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}

	nameCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	ns := nameCell.Slice()
	nameLen, err := ns.LoadUint(8)
	if err != nil {
		return nil, err
	}
	name, err := ns.LoadBytes(int(nameLen))
	if err != nil {
		return nil, err
	}

	contentCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	content, err := DecodeContent(contentCell)
	if err != nil {
		return nil, err
	}
	auctionCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	auction, err := DecodeAuctionConfig(auctionCell)
	if err != nil {
		return nil, err
	}

	d := &ItemInit{
		Index:         index,
		CodeHash:      codeHash,
		Initiator:     initiator,
		Reserve:       reserve,
		Name:          string(name),
		Content:       content,
		AuctionConfig: auction,
	}
	royaltyCell, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	if royaltyCell != nil {
		if d.RoyaltyParams, err = DecodeRoyaltyParams(royaltyCell); err != nil {
			return nil, err
		}
	}
	return d, nil
}
