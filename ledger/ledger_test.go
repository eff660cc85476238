// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
	"github.com/telemintvm/telemintvm/entity"
)

type ledgerFixture struct {
	db        *memdb.Database
	ledger    *Ledger
	genesis   *chain.Genesis
	authority ed25519.PrivateKey
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	priv, err := ed25519.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	g := chain.DefaultGenesis()
	g.MinStorageReserve = 10
	g.FactoryGasMargin = 5
	g.SetAuthority(priv.PublicKey())
	db := memdb.New()
	l, err := New(db, g)
	if err != nil {
		t.Fatal(err)
	}
	return &ledgerFixture{db: db, ledger: l, genesis: g, authority: priv}
}

func (f *ledgerFixture) deployBody(t *testing.T, v *chain.MintVoucher) *entity.Message {
	t.Helper()
	sig, err := v.Sign(f.authority)
	if err != nil {
		t.Fatal(err)
	}
	body, err := chain.NewSignedDeploy(v, sig)
	if err != nil {
		t.Fatal(err)
	}
	return &entity.Message{
		To:   f.ledger.Factory().Address(),
		Body: body,
	}
}

func (f *ledgerFixture) voucher(name string, beneficiary ids.ID, maxBid int64, duration uint32) *chain.MintVoucher {
	return &chain.MintVoucher{
		SubPoolID:  f.genesis.SubPoolID,
		ValidSince: 1000,
		ValidTill:  2000,
		Name:       name,
		Content:    chain.PointerContent("https://meta.invalid/" + name + ".json"),
		AuctionConfig: &chain.AuctionConfig{
			Beneficiary:       beneficiary,
			InitialMinBid:     big.NewInt(100),
			MaxBid:            big.NewInt(maxBid),
			MinBidStepPercent: 5,
			MinExtendSeconds:  300,
			DurationSeconds:   duration,
		},
	}
}

func TestLedgerMintOpensAuction(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t)
	submitter := ids.GenerateTestID()
	msg := f.deployBody(t, f.voucher("alice", ids.GenerateTestID(), 0, 3600))
	msg.From = submitter
	msg.Value = big.NewInt(115)

	if err := f.ledger.Dispatch(1500, msg); err != nil {
		t.Fatal(err)
	}

	child, err := f.ledger.Factory().ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}
	item, ok := f.ledger.Item(child)
	if !ok {
		t.Fatal("item never materialized")
	}
	if !item.Initialized || item.Auction == nil || item.Auction.Bidder == nil {
		t.Fatal("mint did not open an auction with the opening bid")
	}
	if *item.Auction.Bidder != submitter || item.Auction.BidAmount.Int64() != 100 {
		t.Fatalf("opening bid %v by %v", item.Auction.BidAmount, item.Auction.Bidder)
	}

	// 115 in: 5 margin at the factory, 110 at the item
	if b := f.ledger.Balance(f.ledger.Factory().Address()); b.Int64() != 5 {
		t.Fatalf("factory balance %v", b)
	}
	if b := f.ledger.Balance(child); b.Int64() != 110 {
		t.Fatalf("item balance %v", b)
	}
}

func TestLedgerDirectSale(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t)
	beneficiary := ids.GenerateTestID()
	submitter := ids.GenerateTestID()

	// maxBid == initialMinBid with zero duration: fixed-price sale
	msg := f.deployBody(t, f.voucher("123456", beneficiary, 100, 0))
	msg.From = submitter
	msg.Value = big.NewInt(115)
	if err := f.ledger.Dispatch(1500, msg); err != nil {
		t.Fatal(err)
	}

	child, err := f.ledger.Factory().ChildAddress("123456")
	if err != nil {
		t.Fatal(err)
	}
	item, ok := f.ledger.Item(child)
	if !ok {
		t.Fatal("item never materialized")
	}
	if item.Owner == nil || *item.Owner != submitter {
		t.Fatal("fixed-price sale did not assign ownership")
	}
	name, err := item.GetTokenName()
	if err != nil {
		t.Fatal(err)
	}
	if name != "123456" {
		t.Fatalf("token name %q", name)
	}

	if b := f.ledger.Balance(beneficiary); b.Int64() != 100 {
		t.Fatalf("beneficiary balance %v", b)
	}
	if b := f.ledger.Balance(child); b.Int64() != 10 { // the storage reserve stays
		t.Fatalf("item balance %v", b)
	}

	// the item survives a ledger reopen over the same database
	reopened, err := New(f.db, f.genesis)
	if err != nil {
		t.Fatal(err)
	}
	reloaded, ok := reopened.Item(child)
	if !ok {
		t.Fatal("item lost across reopen")
	}
	if reloaded.Owner == nil || *reloaded.Owner != submitter {
		t.Fatal("ownership lost across reopen")
	}
}

func TestLedgerDuplicateMintBounces(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t)
	submitter := ids.GenerateTestID()
	v := f.voucher("alice", ids.GenerateTestID(), 0, 3600)

	first := f.deployBody(t, v)
	first.From = submitter
	first.Value = big.NewInt(115)
	if err := f.ledger.Dispatch(1500, first); err != nil {
		t.Fatal(err)
	}

	child, err := f.ledger.Factory().ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}
	item, _ := f.ledger.Item(child)
	firstBidder := *item.Auction.Bidder

	// a second valid voucher for the same name forwards, the child refuses
	// the repeat init and the funds bounce back to the factory
	second := f.deployBody(t, v)
	second.From = ids.GenerateTestID()
	second.Value = big.NewInt(115)
	if err := f.ledger.Dispatch(1501, second); err != nil {
		t.Fatal(err)
	}

	item, _ = f.ledger.Item(child)
	if *item.Auction.Bidder != firstBidder || item.Auction.BidAmount.Int64() != 100 {
		t.Fatal("repeat init disturbed the standing auction")
	}
	// factory holds both margins plus the bounced forward
	if b := f.ledger.Balance(f.ledger.Factory().Address()); b.Int64() != 5+5+110 {
		t.Fatalf("factory balance %v", b)
	}
}

func TestLedgerBidRefundsPreviousBidder(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t)
	submitter := ids.GenerateTestID()
	msg := f.deployBody(t, f.voucher("alice", ids.GenerateTestID(), 0, 3600))
	msg.From = submitter
	msg.Value = big.NewInt(115)
	if err := f.ledger.Dispatch(1500, msg); err != nil {
		t.Fatal(err)
	}
	child, err := f.ledger.Factory().ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}

	rival := ids.GenerateTestID()
	if err := f.ledger.Dispatch(1510, &entity.Message{
		From:   rival,
		To:     child,
		Value:  big.NewInt(105),
		Bounce: true,
	}); err != nil {
		t.Fatal(err)
	}

	item, _ := f.ledger.Item(child)
	if *item.Auction.Bidder != rival || item.Auction.BidAmount.Int64() != 105 {
		t.Fatal("rival bid not recorded")
	}
	if b := f.ledger.Balance(submitter); b.Int64() != 100 {
		t.Fatalf("outbid refund %v", b)
	}
	if b := f.ledger.Balance(child); b.Int64() != 115 { // 110 + 105 - 100
		t.Fatalf("item balance %v", b)
	}
}

func TestLedgerRejectedBidBouncesValue(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t)
	submitter := ids.GenerateTestID()
	msg := f.deployBody(t, f.voucher("alice", ids.GenerateTestID(), 0, 3600))
	msg.From = submitter
	msg.Value = big.NewInt(115)
	if err := f.ledger.Dispatch(1500, msg); err != nil {
		t.Fatal(err)
	}
	child, err := f.ledger.Factory().ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}

	// a low bid fails at the item and the value bounces to the sender
	lowballer := ids.GenerateTestID()
	err = f.ledger.Dispatch(1510, &entity.Message{
		From:   lowballer,
		To:     child,
		Value:  big.NewInt(104),
		Bounce: true,
	})
	if err == nil {
		t.Fatal("expected the external dispatch to report the rejection")
	}
	if b := f.ledger.Balance(lowballer); b.Int64() != 104 {
		t.Fatalf("bounced value %v", b)
	}
	if b := f.ledger.Balance(child); b.Int64() != 110 {
		t.Fatalf("item balance %v", b)
	}
}

func TestLedgerRejectedDeployLeavesNothing(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t)
	v := f.voucher("alice", ids.GenerateTestID(), 0, 3600)
	v.SubPoolID = 99 // the factory serves sub-pool 1

	msg := f.deployBody(t, v)
	msg.From = ids.GenerateTestID()
	msg.Value = big.NewInt(115)
	if err := f.ledger.Dispatch(1500, msg); err == nil {
		t.Fatal("expected a rejection")
	}

	child, err := f.ledger.Factory().ChildAddress("alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.ledger.Item(child); ok {
		t.Fatal("rejected deploy conjured an item")
	}
	if b := f.ledger.Balance(f.ledger.Factory().Address()); b.Sign() != 0 {
		t.Fatalf("rejected deploy left a factory balance %v", b)
	}
}
