// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
	"github.com/telemintvm/telemintvm/parser"
)

var _ Entity = &Factory{}

// Factory is the collection entity: a pure verifier and forwarder. It
// checks a submitted voucher's signature, validity window, sub-pool and
// restrictions, then forwards initialization funds to the deterministic
// child address. It never transitions state itself.
type Factory struct {
	addr      ids.ID
	genesis   *chain.Genesis
	authority ed25519.PublicKey
}

// NewFactory builds the factory entity for a genesis.
func NewFactory(genesis *chain.Genesis) (*Factory, error) {
	authority, err := genesis.Authority()
	if err != nil {
		return nil, err
	}
	return &Factory{
		addr:      chain.FactoryAddress(genesis),
		genesis:   genesis,
		authority: authority,
	}, nil
}

func (f *Factory) Address() ids.ID { return f.addr }

// Genesis returns the deployment parameters.
func (f *Factory) Genesis() *chain.Genesis { return f.genesis }

// ChildAddress derives the deterministic item address for a name.
func (f *Factory) ChildAddress(name string) (ids.ID, error) {
	if err := parser.CheckName(name); err != nil {
		return ids.Empty, err
	}
	return chain.ItemAddress(chain.ItemIndex(name), f.addr, f.genesis.ItemCodeHash), nil
}

// RoyaltyParams returns the collection's default royalty descriptor.
func (f *Factory) RoyaltyParams() *chain.RoyaltyParams { return f.genesis.Royalty }

// Receive implements the Entity interface.
func (f *Factory) Receive(ctx *Context, msg *Message) error {
	if msg.Bounced {
		// a refused child init comes back here; the value stays on the
		// factory for the operator to refund off-chain
		return nil
	}
	switch msg.Op() {
	case chain.OpDeploy:
		return f.deploy(ctx, msg)
	case chain.OpTopUp, chain.OpNone:
		return nil
	default:
		return chain.ErrUnknownOperation
	}
}

func (f *Factory) deploy(ctx *Context, msg *Message) error {
	signature, voucher, err := chain.ParseSignedDeploy(msg.BodySlice())
	if err != nil {
		return err
	}

	digest, err := voucher.Digest()
	if err != nil {
		return err
	}
	if !f.authority.VerifyHash(digest, signature) {
		return chain.ErrInvalidSignature
	}

	// validity window, boundary-inclusive
	now := ctx.Time
	if now < int64(voucher.ValidSince) {
		return chain.ErrVoucherNotYetValid
	}
	if now > int64(voucher.ValidTill) {
		return chain.ErrVoucherExpired
	}

	if voucher.SubPoolID != f.genesis.SubPoolID {
		return chain.ErrWrongSubPool
	}

	initiator := msg.From
	if r := voucher.Restrictions; r != nil {
		if r.ForceSender != nil && msg.From != *r.ForceSender {
			return chain.ErrSenderNotAllowed
		}
		if r.RewriteSender != nil {
			initiator = *r.RewriteSender
		}
	}

	reserve := new(big.Int).SetUint64(f.genesis.MinStorageReserve)
	margin := new(big.Int).SetUint64(f.genesis.FactoryGasMargin)
	required := new(big.Int).Set(voucher.AuctionConfig.InitialMinBid)
	required.Add(required, reserve)
	required.Add(required, margin)
	value := msg.Value
	if value == nil {
		value = new(big.Int)
	}
	if value.Cmp(required) < 0 {
		return chain.ErrInsufficientFunds
	}

	royalty := voucher.RoyaltyParams
	if royalty == nil {
		royalty = f.genesis.Royalty
	}
	index := chain.ItemIndex(voucher.Name)
	init := &chain.ItemInit{
		Index:         index,
		CodeHash:      f.genesis.ItemCodeHash,
		Initiator:     initiator,
		Reserve:       reserve,
		Name:          voucher.Name,
		Content:       voucher.Content,
		AuctionConfig: voucher.AuctionConfig,
		RoyaltyParams: royalty,
	}
	body, err := init.Encode()
	if err != nil {
		return err
	}

	// fire-and-forget: the child's accept-only-first-init rule is the
	// sole guard against two valid vouchers racing for one name
	ctx.Send(&Message{
		From:   f.addr,
		To:     chain.ItemAddress(index, f.addr, f.genesis.ItemCodeHash),
		Value:  new(big.Int).Sub(value, margin),
		Body:   body,
		Bounce: true,
	})
	return nil
}

// State implements the Entity interface. The factory's own mutable state
// is just its balance (held by the ledger); the persisted cell records the
// deployment parameters for queries.
func (f *Factory) State() (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(f.genesis.SubPoolID), 32); err != nil {
		return nil, err
	}
	if err := b.StoreBytes(f.authority.Bytes()); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(f.genesis.ItemCodeHash); err != nil {
		return nil, err
	}

	content, err := chain.PointerContent(f.genesis.CollectionContent).Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(content); err != nil {
		return nil, err
	}
	var royalty *cell.Cell
	if f.genesis.Royalty != nil {
		if royalty, err = f.genesis.Royalty.Encode(); err != nil {
			return nil, err
		}
	}
	if err := b.StoreMaybeRef(royalty); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
