// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
)

// ItemData is the read-only snapshot exposed to queries.
type ItemData struct {
	Initialized bool               `serialize:"true" json:"initialized"`
	Index       ids.ID             `serialize:"true" json:"index"`
	Factory     ids.ID             `serialize:"true" json:"factory"`
	Owner       *ids.ID            `serialize:"true" json:"owner,omitempty"`
	Content     *chain.ContentData `serialize:"true" json:"content,omitempty"`
}

// AuctionState is the live bidding snapshot exposed to queries.
type AuctionState struct {
	Bidder     *ids.ID  `serialize:"true" json:"bidder,omitempty"`
	BidAmount  *big.Int `serialize:"true" json:"bidAmount,omitempty"`
	BidTime    int64    `serialize:"true" json:"bidTime"`
	MinNextBid *big.Int `serialize:"true" json:"minNextBid"`
	EndTime    int64    `serialize:"true" json:"endTime"`
}

// GetItemData returns the item snapshot.
func (i *Item) GetItemData() (*ItemData, error) {
	if !i.Initialized {
		return nil, chain.ErrNotInitialized
	}
	return &ItemData{
		Initialized: true,
		Index:       i.Index,
		Factory:     i.Factory,
		Owner:       i.Owner,
		Content:     i.Content,
	}, nil
}

// GetTokenName returns the minted name.
func (i *Item) GetTokenName() (string, error) {
	if !i.Initialized {
		return "", chain.ErrNotInitialized
	}
	return i.TokenName, nil
}

// GetAuctionState returns the live auction snapshot.
func (i *Item) GetAuctionState() (*AuctionState, error) {
	if !i.Initialized {
		return nil, chain.ErrNotInitialized
	}
	if i.Auction == nil {
		return nil, chain.ErrNoActiveAuction
	}
	a := i.Auction
	return &AuctionState{
		Bidder:     a.Bidder,
		BidAmount:  a.BidAmount,
		BidTime:    a.BidTime,
		MinNextBid: a.Config.MinimumNextBid(a.BidAmount),
		EndTime:    a.EndTime,
	}, nil
}

// GetAuctionConfig returns the configuration of the live auction.
func (i *Item) GetAuctionConfig() (*chain.AuctionConfig, error) {
	if !i.Initialized {
		return nil, chain.ErrNotInitialized
	}
	if i.Auction == nil {
		return nil, chain.ErrNoActiveAuction
	}
	return i.Auction.Config, nil
}

// GetRoyaltyParams returns the item's royalty descriptor, which stays
// queryable for the entity's lifetime.
func (i *Item) GetRoyaltyParams() (*chain.RoyaltyParams, error) {
	if !i.Initialized {
		return nil, chain.ErrNotInitialized
	}
	return i.Royalty, nil
}

// State implements the Entity interface. The layout mirrors the data
// model: identity and ownership inline, descriptors and auction state as
// references.
func (i *Item) State() (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreBit(i.Initialized); err != nil {
		return nil, err
	}
	if !i.Initialized {
		return b.Build(), nil
	}
	if err := b.StoreAddress(i.Index); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(i.Factory); err != nil {
		return nil, err
	}
	if err := b.StoreMaybeAddress(i.Owner); err != nil {
		return nil, err
	}

	name := []byte(i.TokenName)
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

	content, err := i.Content.Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(content); err != nil {
		return nil, err
	}

	var auction *cell.Cell
	if i.Auction != nil {
		if auction, err = encodeAuction(i.Auction); err != nil {
			return nil, err
		}
	}
	if err := b.StoreMaybeRef(auction); err != nil {
		return nil, err
	}

	var royalty *cell.Cell
	if i.Royalty != nil {
		if royalty, err = i.Royalty.Encode(); err != nil {
			return nil, err
		}
	}
	if err := b.StoreMaybeRef(royalty); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// LoadItem reconstructs an item entity from its persisted state cell.
func LoadItem(addr ids.ID, c *cell.Cell) (*Item, error) {
	i := NewItem(addr)
	s := c.Slice()
	initialized, err := s.LoadBit()
	if err != nil {
		return nil, err
	}
	if !initialized {
		return i, nil
	}
	i.Initialized = true
	if i.Index, err = s.LoadAddress(); err != nil {
		return nil, err
	}
	if i.Factory, err = s.LoadAddress(); err != nil {
		return nil, err
	}
	if i.Owner, err = s.LoadMaybeAddress(); err != nil {
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
	i.TokenName = string(name)

	contentCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	if i.Content, err = chain.DecodeContent(contentCell); err != nil {
		return nil, err
	}

	auctionCell, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	if auctionCell != nil {
		if i.Auction, err = decodeAuction(auctionCell); err != nil {
			return nil, err
		}
	}

	royaltyCell, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	if royaltyCell != nil {
		if i.Royalty, err = chain.DecodeRoyaltyParams(royaltyCell); err != nil {
			return nil, err
		}
	}
	return i, nil
}

func encodeAuction(a *Auction) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreMaybeAddress(a.Bidder); err != nil {
		return nil, err
	}
	amount := a.BidAmount
	if amount == nil {
		amount = new(big.Int)
	}
	if err := b.StoreCoins(amount); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(a.BidTime), 32); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(a.EndTime), 32); err != nil {
		return nil, err
	}
	cfg, err := a.Config.Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(cfg); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func decodeAuction(c *cell.Cell) (*Auction, error) {
	s := c.Slice()
	bidder, err := s.LoadMaybeAddress()
	if err != nil {
		return nil, err
	}
	amount, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	bidTime, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	endTime, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	cfgCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	cfg, err := chain.DecodeAuctionConfig(cfgCell)
	if err != nil {
		return nil, err
	}
	a := &Auction{
		Config:  cfg,
		BidTime: int64(bidTime),
		EndTime: int64(endTime),
	}
	if bidder != nil {
		a.Bidder = bidder
		a.BidAmount = amount
	}
	return a, nil
}
