// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
	"github.com/telemintvm/telemintvm/parser"
)

type factoryFixture struct {
	factory   *Factory
	genesis   *chain.Genesis
	authority ed25519.PrivateKey
}

func newFactoryFixture(t *testing.T) *factoryFixture {
	t.Helper()
	priv, err := ed25519.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	g := chain.DefaultGenesis()
	g.MinStorageReserve = 10
	g.FactoryGasMargin = 5
	g.SetAuthority(priv.PublicKey())
	f, err := NewFactory(g)
	if err != nil {
		t.Fatal(err)
	}
	return &factoryFixture{factory: f, genesis: g, authority: priv}
}

func (f *factoryFixture) voucher(name string) *chain.MintVoucher {
	return &chain.MintVoucher{
		SubPoolID:  f.genesis.SubPoolID,
		ValidSince: 1000,
		ValidTill:  2000,
		Name:       name,
		Content:    chain.PointerContent("https://meta.invalid/" + name + ".json"),
		AuctionConfig: &chain.AuctionConfig{
			Beneficiary:       ids.GenerateTestID(),
			InitialMinBid:     big.NewInt(100),
			MaxBid:            big.NewInt(0),
			MinBidStepPercent: 5,
			MinExtendSeconds:  300,
			DurationSeconds:   3600,
		},
	}
}

func (f *factoryFixture) submit(t *testing.T, now int64, from ids.ID, v *chain.MintVoucher, sig []byte, value int64) (*Context, error) {
	t.Helper()
	body, err := chain.NewSignedDeploy(v, sig)
	if err != nil {
		t.Fatal(err)
	}
	ctx := &Context{Time: now}
	return ctx, f.factory.Receive(ctx, &Message{
		From:  from,
		To:    f.factory.Address(),
		Value: big.NewInt(value),
		Body:  body,
	})
}

func (f *factoryFixture) sign(t *testing.T, v *chain.MintVoucher) []byte {
	t.Helper()
	sig, err := v.Sign(f.authority)
	if err != nil {
		t.Fatal(err)
	}
	return sig
}

func TestFactoryDeploy(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)
	v := f.voucher("alice")
	submitter := ids.GenerateTestID()

	// minBid 100 + reserve 10 + margin 5
	ctx, err := f.submit(t, 1500, submitter, v, f.sign(t, v), 115)
	if err != nil {
		t.Fatal(err)
	}

	out := ctx.Outbox()
	if len(out) != 1 {
		t.Fatalf("outbox %d messages", len(out))
	}
	fwd := out[0]
	child, err := f.factory.ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}
	if fwd.To != child {
		t.Fatal("init not aimed at the deterministic child address")
	}
	if fwd.Value.Int64() != 110 { // value minus margin
		t.Fatalf("forwarded %v", fwd.Value)
	}
	if !fwd.Bounce {
		t.Fatal("init must be bounceable")
	}
	if fwd.Op() != chain.OpItemDeploy {
		t.Fatalf("forwarded op %#x", fwd.Op())
	}

	init, err := chain.ParseItemInit(fwd.BodySlice())
	if err != nil {
		t.Fatal(err)
	}
	if init.Initiator != submitter {
		t.Fatal("initiator must be the submitting sender")
	}
	if init.Reserve.Int64() != 10 {
		t.Fatalf("reserve %v", init.Reserve)
	}
	if init.Name != "alice" || init.Index != chain.ItemIndex("alice") {
		t.Fatal("name/index mismatch in forwarded init")
	}
	if init.RoyaltyParams != nil {
		t.Fatal("no voucher royalty and no genesis royalty, got one anyway")
	}
}

func TestFactoryDeployRejections(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)
	sender := ids.GenerateTestID()
	forced := ids.GenerateTestID()

	tt := []struct {
		name   string
		mutate func(v *chain.MintVoucher)
		sig    func(t *testing.T, v *chain.MintVoucher) []byte
		now    int64
		from   ids.ID
		value  int64
		err    error
	}{
		{
			name:   "bad signature",
			mutate: func(v *chain.MintVoucher) {},
			sig: func(t *testing.T, v *chain.MintVoucher) []byte {
				sig := f.sign(t, v)
				sig[0] ^= 0xff
				return sig
			},
			now: 1500, from: sender, value: 115,
			err: chain.ErrInvalidSignature,
		},
		{
			name:   "tampered after signing",
			mutate: func(v *chain.MintVoucher) {},
			sig: func(t *testing.T, v *chain.MintVoucher) []byte {
				clean := f.voucher("other")
				return f.sign(t, clean)
			},
			now: 1500, from: sender, value: 115,
			err: chain.ErrInvalidSignature,
		},
		{
			name:   "not yet valid",
			mutate: func(v *chain.MintVoucher) {},
			sig:    f.sign,
			now:    999, from: sender, value: 115,
			err: chain.ErrVoucherNotYetValid,
		},
		{
			name:   "expired",
			mutate: func(v *chain.MintVoucher) {},
			sig:    f.sign,
			now:    2001, from: sender, value: 115,
			err: chain.ErrVoucherExpired,
		},
		{
			name:   "wrong sub-pool",
			mutate: func(v *chain.MintVoucher) { v.SubPoolID = 99 },
			sig:    f.sign,
			now:    1500, from: sender, value: 115,
			err: chain.ErrWrongSubPool,
		},
		{
			name: "force-sender mismatch",
			mutate: func(v *chain.MintVoucher) {
				v.Restrictions = &chain.Restrictions{ForceSender: &forced}
			},
			sig: f.sign,
			now: 1500, from: sender, value: 115,
			err: chain.ErrSenderNotAllowed,
		},
		{
			name:   "underfunded",
			mutate: func(v *chain.MintVoucher) {},
			sig:    f.sign,
			now:    1500, from: sender, value: 114,
			err: chain.ErrInsufficientFunds,
		},
	}
	for _, tv := range tt {
		tv := tv
		t.Run(tv.name, func(t *testing.T) {
			v := f.voucher("alice")
			tv.mutate(v)
			ctx, err := f.submit(t, tv.now, tv.from, v, tv.sig(t, v), tv.value)
			if !errors.Is(err, tv.err) {
				t.Fatalf("expected %v, got %v", tv.err, err)
			}
			if len(ctx.Outbox()) != 0 {
				t.Fatal("rejected deploy still forwarded a message")
			}
		})
	}
}

func TestFactoryWindowBoundaries(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)
	for _, now := range []int64{1000, 2000} { // both bounds inclusive
		v := f.voucher("alice")
		if _, err := f.submit(t, now, ids.GenerateTestID(), v, f.sign(t, v), 115); err != nil {
			t.Fatalf("deploy at %d: %v", now, err)
		}
	}
}

func TestFactoryRewriteSender(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)
	rewritten := ids.GenerateTestID()
	v := f.voucher("alice")
	v.Restrictions = &chain.Restrictions{RewriteSender: &rewritten}

	ctx, err := f.submit(t, 1500, ids.GenerateTestID(), v, f.sign(t, v), 115)
	if err != nil {
		t.Fatal(err)
	}
	init, err := chain.ParseItemInit(ctx.Outbox()[0].BodySlice())
	if err != nil {
		t.Fatal(err)
	}
	if init.Initiator != rewritten {
		t.Fatal("rewrite-sender restriction ignored")
	}
}

func TestFactoryRoyaltyFallback(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)
	def, err := chain.NewRoyaltyParams(3, 100, ids.GenerateTestID())
	if err != nil {
		t.Fatal(err)
	}
	f.genesis.Royalty = def

	// no voucher royalty: the collection default applies
	v := f.voucher("alice")
	ctx, err := f.submit(t, 1500, ids.GenerateTestID(), v, f.sign(t, v), 115)
	if err != nil {
		t.Fatal(err)
	}
	init, err := chain.ParseItemInit(ctx.Outbox()[0].BodySlice())
	if err != nil {
		t.Fatal(err)
	}
	if init.RoyaltyParams == nil || init.RoyaltyParams.Destination != def.Destination {
		t.Fatal("genesis royalty not applied")
	}

	// a voucher royalty overrides it
	own, err := chain.NewRoyaltyParams(7, 100, ids.GenerateTestID())
	if err != nil {
		t.Fatal(err)
	}
	v2 := f.voucher("bob")
	v2.RoyaltyParams = own
	ctx2, err := f.submit(t, 1500, ids.GenerateTestID(), v2, f.sign(t, v2), 115)
	if err != nil {
		t.Fatal(err)
	}
	init2, err := chain.ParseItemInit(ctx2.Outbox()[0].BodySlice())
	if err != nil {
		t.Fatal(err)
	}
	if init2.RoyaltyParams == nil || init2.RoyaltyParams.Destination != own.Destination {
		t.Fatal("voucher royalty not honored")
	}
}

func TestFactoryChildAddress(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)
	a1, err := f.factory.ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := f.factory.ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}
	if a1 != a2 {
		t.Fatal("child address not deterministic")
	}
	b, err := f.factory.ChildAddress("bob")
	if err != nil {
		t.Fatal(err)
	}
	if a1 == b {
		t.Fatal("distinct names collided")
	}
	if _, err := f.factory.ChildAddress("Not Valid!"); !errors.Is(err, parser.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestFactoryMisc(t *testing.T) {
	t.Parallel()

	f := newFactoryFixture(t)

	// top-ups and unknown ops
	if err := f.factory.Receive(&Context{Time: 1500}, &Message{
		From:  ids.GenerateTestID(),
		To:    f.factory.Address(),
		Value: big.NewInt(100),
		Body:  opCell(chain.OpTopUp),
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.factory.Receive(&Context{Time: 1500}, &Message{
		From:  ids.GenerateTestID(),
		To:    f.factory.Address(),
		Value: new(big.Int),
		Body:  opCell(0xdeadbeef),
	}); !errors.Is(err, chain.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}

	// a bounced child refusal lands quietly
	if err := f.factory.Receive(&Context{Time: 1500}, &Message{
		From:    ids.GenerateTestID(),
		To:      f.factory.Address(),
		Value:   big.NewInt(110),
		Bounced: true,
	}); err != nil {
		t.Fatal(err)
	}
}
