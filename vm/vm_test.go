// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/json"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
)

func newTestVM(t *testing.T) (*VM, ed25519.PrivateKey) {
	t.Helper()
	priv, err := ed25519.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	g := chain.DefaultGenesis()
	g.MinStorageReserve = 10
	g.FactoryGasMargin = 5
	g.SetAuthority(priv.PublicKey())
	vm, err := New(memdb.New(), g)
	if err != nil {
		t.Fatal(err)
	}
	vm.clock = func() int64 { return 1500 }
	return vm, priv
}

func signedDeployBytes(t *testing.T, priv ed25519.PrivateKey, g *chain.Genesis, name string) []byte {
	t.Helper()
	v := &chain.MintVoucher{
		SubPoolID:  g.SubPoolID,
		ValidSince: 1000,
		ValidTill:  2000,
		Name:       name,
		Content:    chain.PointerContent("https://meta.invalid/" + name + ".json"),
		AuctionConfig: &chain.AuctionConfig{
			Beneficiary:       ids.GenerateTestID(),
			InitialMinBid:     big.NewInt(100),
			MaxBid:            big.NewInt(100),
			MinBidStepPercent: 5,
		},
	}
	sig, err := v.Sign(priv)
	if err != nil {
		t.Fatal(err)
	}
	body, err := chain.NewSignedDeploy(v, sig)
	if err != nil {
		t.Fatal(err)
	}
	return cell.Encode(body)
}

func TestServiceMintAndQuery(t *testing.T) {
	t.Parallel()

	vm, priv := newTestVM(t)
	svc := &PublicService{vm: vm}

	var ping PingReply
	if err := svc.Ping(nil, nil, &ping); err != nil || !ping.Success {
		t.Fatalf("ping: %v", err)
	}
	var gen GenesisReply
	if err := svc.Genesis(nil, nil, &gen); err != nil || gen.Genesis == nil {
		t.Fatalf("genesis: %v", err)
	}

	var child ChildAddressReply
	if err := svc.ChildAddress(nil, &ChildAddressArgs{Name: "alice"}, &child); err != nil {
		t.Fatal(err)
	}
	if _, err := vm.Ledger().Factory().ChildAddress("alice"); err != nil {
		t.Fatal(err)
	}

	// nothing lives there yet
	var data ItemDataReply
	if err := svc.ItemData(nil, &ItemArgs{Address: child.Address}, &data); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	submitter := ids.GenerateTestID()
	var issued IssueMsgReply
	err := svc.IssueMsg(nil, &IssueMsgArgs{
		From:  submitter,
		Value: 115,
		Body:  signedDeployBytes(t, priv, vm.Genesis(), "alice"),
	}, &issued)
	if err != nil || !issued.Success {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.ItemData(nil, &ItemArgs{Address: child.Address}, &data); err != nil {
		t.Fatal(err)
	}
	if data.Data.Owner == nil || *data.Data.Owner != submitter {
		t.Fatalf("owner %v", data.Data.Owner)
	}

	var name TokenNameReply
	if err := svc.TokenName(nil, &ItemArgs{Address: child.Address}, &name); err != nil {
		t.Fatal(err)
	}
	if name.Name != "alice" {
		t.Fatalf("token name %q", name.Name)
	}

	// direct sale: no auction survives the mint
	var state AuctionStateReply
	if err := svc.AuctionState(nil, &ItemArgs{Address: child.Address}, &state); !errors.Is(err, chain.ErrNoActiveAuction) {
		t.Fatalf("expected ErrNoActiveAuction, got %v", err)
	}

	var bal BalanceReply
	if err := svc.Balance(nil, &BalanceArgs{Address: vm.Ledger().Factory().Address()}, &bal); err != nil {
		t.Fatal(err)
	}
	if bal.Balance != json.Uint64(5) {
		t.Fatalf("factory balance %d", bal.Balance)
	}
}

func TestServiceIssueRejection(t *testing.T) {
	t.Parallel()

	vm, priv := newTestVM(t)
	svc := &PublicService{vm: vm}

	var issued IssueMsgReply
	err := svc.IssueMsg(nil, &IssueMsgArgs{
		From:  ids.GenerateTestID(),
		Value: 1, // far below minBid + reserve + margin
		Body:  signedDeployBytes(t, priv, vm.Genesis(), "alice"),
	}, &issued)
	if !errors.Is(err, chain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if issued.Success {
		t.Fatal("rejection reported success")
	}
}

func TestCreateHandlers(t *testing.T) {
	t.Parallel()

	vm, _ := newTestVM(t)
	handlers, err := vm.CreateHandlers()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := handlers[PublicEndpoint]; !ok {
		t.Fatal("public endpoint not mounted")
	}
}
