// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
)

var _ Entity = &Item{}

// Auction is the live bidding state of an item.
type Auction struct {
	Config *chain.AuctionConfig

	Bidder    *ids.ID
	BidAmount *big.Int
	BidTime   int64

	EndTime int64
}

// Item is the entity representing one minted name. Lifecycle:
// uninitialized (address computable, nothing on ledger) → active (auction
// open) → owned; active is re-enterable from owned only through an
// explicit start-new-auction by the current owner.
type Item struct {
	addr ids.ID

	Initialized bool
	Index       ids.ID
	Factory     ids.ID
	TokenName   string
	Content     *chain.ContentData
	Royalty     *chain.RoyaltyParams

	Owner   *ids.ID
	Auction *Auction
}

// NewItem returns the uninitialized item entity at addr.
func NewItem(addr ids.ID) *Item {
	return &Item{addr: addr}
}

func (i *Item) Address() ids.ID { return i.addr }

// Receive implements the Entity interface.
func (i *Item) Receive(ctx *Context, msg *Message) error {
	if msg.Bounced {
		// keep the returned value, never act on the body
		return nil
	}
	op := msg.Op()

	if !i.Initialized {
		switch op {
		case chain.OpItemDeploy:
			return i.initialize(ctx, msg)
		case chain.OpTopUp:
			return nil
		default:
			return chain.ErrNotInitialized
		}
	}

	if op == chain.OpItemDeploy {
		// only the first init message is authoritative
		return chain.ErrAlreadyInitialized
	}
	if op == chain.OpTopUp {
		return nil
	}

	settled := i.maybeSettleExpired(ctx)

	switch op {
	case chain.OpNone:
		if i.Auction != nil {
			return i.applyBid(ctx, msg.From, msg.Value)
		}
		if settled {
			// the auction ended before this payment arrived; hand it back
			ctx.Send(&Message{From: i.addr, To: msg.From, Value: msg.Value})
			return nil
		}
		// plain transfer outside an auction tops up the balance
		return nil
	case chain.OpCancelAuction:
		return i.cancelAuction(msg.From)
	case chain.OpStartAuction:
		return i.startAuction(ctx, msg)
	case chain.OpTransfer:
		return i.transfer(ctx, msg)
	default:
		return chain.ErrUnknownOperation
	}
}

func (i *Item) initialize(ctx *Context, msg *Message) error {
	init, err := chain.ParseItemInit(msg.BodySlice())
	if err != nil {
		return err
	}
	if chain.ItemIndex(init.Name) != init.Index {
		return chain.ErrNotAuthorized
	}
	// The deploying factory must be the one this address was derived
	// from, or anyone could initialize someone else's item.
	if chain.ItemAddress(init.Index, msg.From, init.CodeHash) != i.addr {
		return chain.ErrNotAuthorized
	}

	value := msg.Value
	if value == nil {
		value = new(big.Int)
	}
	bid := new(big.Int).Sub(value, init.Reserve)
	if bid.Sign() < 0 {
		return chain.ErrInsufficientFunds
	}

	i.Initialized = true
	i.Index = init.Index
	i.Factory = msg.From
	i.TokenName = init.Name
	i.Content = init.Content
	i.Royalty = init.RoyaltyParams
	i.Auction = &Auction{
		Config:  init.AuctionConfig,
		EndTime: ctx.Time + int64(init.AuctionConfig.DurationSeconds),
	}
	if bid.Sign() > 0 {
		// the forwarded payment is the opening bid; on a direct-sale
		// config this settles the item immediately
		return i.applyBid(ctx, init.Initiator, bid)
	}
	return nil
}

func (i *Item) applyBid(ctx *Context, bidder ids.ID, amount *big.Int) error {
	a := i.Auction
	if a == nil {
		return chain.ErrNoActiveAuction
	}
	if amount == nil || amount.Sign() <= 0 {
		return chain.ErrBidTooLow
	}
	if amount.Cmp(a.Config.MinimumNextBid(a.BidAmount)) < 0 {
		return chain.ErrBidTooLow
	}

	if a.Bidder != nil {
		ctx.Send(&Message{
			From:  i.addr,
			To:    *a.Bidder,
			Value: new(big.Int).Set(a.BidAmount),
			Body:  opCell(chain.OpOutbidNotification),
		})
	}
	b := bidder
	a.Bidder = &b
	a.BidAmount = new(big.Int).Set(amount)
	a.BidTime = ctx.Time

	if a.Config.MaxBid.Sign() > 0 && amount.Cmp(a.Config.MaxBid) >= 0 {
		i.settle(ctx)
		return nil
	}
	if a.EndTime-ctx.Time < int64(a.Config.MinExtendSeconds) {
		a.EndTime = ctx.Time + int64(a.Config.MinExtendSeconds)
	}
	return nil
}

// maybeSettleExpired lazily concludes an auction whose end time has
// passed. Returns true if a settlement happened in this receive.
func (i *Item) maybeSettleExpired(ctx *Context) bool {
	if i.Auction == nil || ctx.Time <= i.Auction.EndTime {
		return false
	}
	i.settle(ctx)
	return true
}

// settle concludes the auction: with a bidder, ownership moves to them and
// proceeds route to the beneficiary net of royalty; without one, the
// auction simply closes.
func (i *Item) settle(ctx *Context) {
	a := i.Auction
	i.Auction = nil
	if a.Bidder == nil {
		return
	}

	cut := i.Royalty.Cut(a.BidAmount)
	if cut.Sign() > 0 {
		ctx.Send(&Message{
			From:  i.addr,
			To:    i.Royalty.Destination,
			Value: cut,
		})
	}
	rest := new(big.Int).Sub(a.BidAmount, cut)
	if rest.Sign() > 0 {
		ctx.Send(&Message{
			From:  i.addr,
			To:    a.Config.Beneficiary,
			Value: rest,
		})
	}

	owner := *a.Bidder
	i.Owner = &owner
	ctx.Send(&Message{
		From:  i.addr,
		To:    owner,
		Value: new(big.Int),
		Body:  opCell(chain.OpOwnershipAssigned),
	})
}

func (i *Item) cancelAuction(sender ids.ID) error {
	if i.Auction == nil {
		return chain.ErrNoActiveAuction
	}
	authorized := i.Auction.Config.Beneficiary
	if i.Owner != nil {
		authorized = *i.Owner
	}
	if sender != authorized {
		return chain.ErrNotAuthorized
	}
	if i.Auction.Bidder != nil {
		return chain.ErrAuctionHasBids
	}
	i.Auction = nil
	return nil
}

func (i *Item) startAuction(ctx *Context, msg *Message) error {
	if i.Auction != nil {
		return chain.ErrAuctionActive
	}
	if i.Owner == nil || msg.From != *i.Owner {
		return chain.ErrNotAuthorized
	}
	s := msg.BodySlice()
	if s == nil {
		return cell.ErrMalformedEncoding
	}
	cfgCell, err := s.LoadRef()
	if err != nil {
		return err
	}
	cfg, err := chain.DecodeAuctionConfig(cfgCell)
	if err != nil {
		return err
	}
	// the seller stays recorded as owner until the new auction settles,
	// so a no-bid expiry or cancel falls back to them
	i.Auction = &Auction{
		Config:  cfg,
		EndTime: ctx.Time + int64(cfg.DurationSeconds),
	}
	return nil
}

func (i *Item) transfer(ctx *Context, msg *Message) error {
	if i.Auction != nil {
		return chain.ErrAuctionActive
	}
	if i.Owner == nil || msg.From != *i.Owner {
		return chain.ErrNotAuthorized
	}
	s := msg.BodySlice()
	if s == nil {
		return cell.ErrMalformedEncoding
	}
	newOwner, err := s.LoadAddress()
	if err != nil {
		return err
	}
	i.Owner = &newOwner
	ctx.Send(&Message{
		From:  i.addr,
		To:    newOwner,
		Value: new(big.Int),
		Body:  opCell(chain.OpOwnershipAssigned),
	})
	return nil
}

func opCell(op uint32) *cell.Cell {
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(op), 32); err != nil {
		panic(err) // 32 bits always fit an empty cell
	}
	return b.Build()
}
