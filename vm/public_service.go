// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/json"
	log "github.com/inconshreveable/log15"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/entity"
)

var ErrItemNotFound = errors.New("no item at this address")

type PublicService struct {
	vm *VM
}

type PingReply struct {
	Success bool `serialize:"true" json:"success"`
}

func (svc *PublicService) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	log.Info("ping")
	reply.Success = true
	return nil
}

type GenesisReply struct {
	Genesis *chain.Genesis `serialize:"true" json:"genesis"`
}

func (svc *PublicService) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = svc.vm.Genesis()
	return nil
}

type ChildAddressArgs struct {
	Name string `serialize:"true" json:"name"`
}

type ChildAddressReply struct {
	Address ids.ID `serialize:"true" json:"address"`
}

func (svc *PublicService) ChildAddress(_ *http.Request, args *ChildAddressArgs, reply *ChildAddressReply) error {
	addr, err := svc.vm.ledger.Factory().ChildAddress(args.Name)
	if err != nil {
		return err
	}
	reply.Address = addr
	return nil
}

type ItemArgs struct {
	Address ids.ID `serialize:"true" json:"address"`
}

func (svc *PublicService) item(addr ids.ID) (*entity.Item, error) {
	i, ok := svc.vm.ledger.Item(addr)
	if !ok {
		return nil, ErrItemNotFound
	}
	return i, nil
}

type ItemDataReply struct {
	Data *entity.ItemData `serialize:"true" json:"data"`
}

func (svc *PublicService) ItemData(_ *http.Request, args *ItemArgs, reply *ItemDataReply) error {
	i, err := svc.item(args.Address)
	if err != nil {
		return err
	}
	if reply.Data, err = i.GetItemData(); err != nil {
		return err
	}
	return nil
}

type TokenNameReply struct {
	Name string `serialize:"true" json:"name"`
}

func (svc *PublicService) TokenName(_ *http.Request, args *ItemArgs, reply *TokenNameReply) error {
	i, err := svc.item(args.Address)
	if err != nil {
		return err
	}
	if reply.Name, err = i.GetTokenName(); err != nil {
		return err
	}
	return nil
}

type AuctionStateReply struct {
	State *entity.AuctionState `serialize:"true" json:"state"`
}

func (svc *PublicService) AuctionState(_ *http.Request, args *ItemArgs, reply *AuctionStateReply) error {
	i, err := svc.item(args.Address)
	if err != nil {
		return err
	}
	if reply.State, err = i.GetAuctionState(); err != nil {
		return err
	}
	return nil
}

type AuctionConfigReply struct {
	Config *chain.AuctionConfig `serialize:"true" json:"config"`
}

func (svc *PublicService) AuctionConfig(_ *http.Request, args *ItemArgs, reply *AuctionConfigReply) error {
	i, err := svc.item(args.Address)
	if err != nil {
		return err
	}
	if reply.Config, err = i.GetAuctionConfig(); err != nil {
		return err
	}
	return nil
}

type RoyaltyParamsReply struct {
	Royalty *chain.RoyaltyParams `serialize:"true" json:"royalty,omitempty"`
}

func (svc *PublicService) RoyaltyParams(_ *http.Request, args *ItemArgs, reply *RoyaltyParamsReply) error {
	i, err := svc.item(args.Address)
	if err != nil {
		return err
	}
	if reply.Royalty, err = i.GetRoyaltyParams(); err != nil {
		return err
	}
	return nil
}

type BalanceArgs struct {
	Address ids.ID `serialize:"true" json:"address"`
}

type BalanceReply struct {
	Balance json.Uint64 `serialize:"true" json:"balance"`
}

func (svc *PublicService) Balance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	reply.Balance = json.Uint64(svc.vm.ledger.Balance(args.Address).Uint64())
	return nil
}

type IssueMsgArgs struct {
	// From is the externally owned sender address.
	From ids.ID `serialize:"true" json:"from"`
	// To defaults to the factory address when empty.
	To    ids.ID      `serialize:"true" json:"to"`
	Value json.Uint64 `serialize:"true" json:"value"`
	// Body is the wire-encoded message body cell; empty for a plain
	// value transfer (a bid or top-up).
	Body []byte `serialize:"true" json:"body"`
}

type IssueMsgReply struct {
	Success bool `serialize:"true" json:"success"`
}

func (svc *PublicService) IssueMsg(_ *http.Request, args *IssueMsgArgs, reply *IssueMsgReply) error {
	var body *cell.Cell
	if len(args.Body) > 0 {
		var err error
		if body, err = cell.Decode(args.Body); err != nil {
			return err
		}
	}
	to := args.To
	if to == ids.Empty {
		to = svc.vm.ledger.Factory().Address()
	}
	err := svc.vm.Submit(&entity.Message{
		From:   args.From,
		To:     to,
		Value:  new(big.Int).SetUint64(uint64(args.Value)),
		Body:   body,
		Bounce: true,
	})
	reply.Success = err == nil
	return err
}
