// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client implements the telemintvm client SDK.
package client

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	avajson "github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/entity"
	"github.com/telemintvm/telemintvm/vm"
)

// Client defines telemintvm client operations.
type Client interface {
	// Pings the VM.
	Ping() (bool, error)
	// Returns the VM genesis.
	Genesis() (*chain.Genesis, error)

	// ChildAddress derives the item address a name would mint at.
	ChildAddress(name string) (ids.ID, error)
	// ItemData fetches the item snapshot at an address.
	ItemData(addr ids.ID) (*entity.ItemData, error)
	// TokenName fetches the minted name at an address.
	TokenName(addr ids.ID) (string, error)
	// AuctionState fetches the live bidding snapshot.
	AuctionState(addr ids.ID) (*entity.AuctionState, error)
	// AuctionConfig fetches the live auction's configuration.
	AuctionConfig(addr ids.ID) (*chain.AuctionConfig, error)
	// RoyaltyParams fetches the item's royalty descriptor.
	RoyaltyParams(addr ids.ID) (*chain.RoyaltyParams, error)
	// Balance returns the spendable balance of any address.
	Balance(addr ids.ID) (uint64, error)

	// IssueMsg submits one external message. An empty To aims at the
	// factory; body is a wire-encoded cell, nil for a plain transfer.
	IssueMsg(from ids.ID, to ids.ID, value uint64, body []byte) (bool, error)

	// PollOwned polls an item until it reports an owner.
	PollOwned(ctx context.Context, addr ids.ID) (*ids.ID, error)
}

// New creates a new client object.
func New(uri string, reqTimeout time.Duration, opts ...Option) Client {
	req := rpc.NewEndpointRequester(
		uri,
		vm.PublicEndpoint,
		vm.Name,
		reqTimeout,
	)
	cli := &client{req: req}
	for _, op := range opts {
		op(cli)
	}
	return cli
}

// Option configures the client.
type Option func(*client)

// WithRetry retries every request per policy.
func WithRetry(policy RetryPolicy) Option {
	return func(cli *client) {
		cli.retry = &policy
	}
}

type client struct {
	req   rpc.EndpointRequester
	retry *RetryPolicy
}

func (cli *client) send(method string, args interface{}, reply interface{}) error {
	if cli.retry == nil {
		return cli.req.SendRequest(method, args, reply)
	}
	return cli.retry.do(func() error {
		return cli.req.SendRequest(method, args, reply)
	})
}

func (cli *client) Ping() (bool, error) {
	resp := new(vm.PingReply)
	if err := cli.send("ping", nil, resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) Genesis() (*chain.Genesis, error) {
	resp := new(vm.GenesisReply)
	err := cli.send("genesis", nil, resp)
	return resp.Genesis, err
}

func (cli *client) ChildAddress(name string) (ids.ID, error) {
	resp := new(vm.ChildAddressReply)
	if err := cli.send("childAddress", &vm.ChildAddressArgs{Name: name}, resp); err != nil {
		return ids.Empty, err
	}
	return resp.Address, nil
}

func (cli *client) ItemData(addr ids.ID) (*entity.ItemData, error) {
	resp := new(vm.ItemDataReply)
	if err := cli.send("itemData", &vm.ItemArgs{Address: addr}, resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (cli *client) TokenName(addr ids.ID) (string, error) {
	resp := new(vm.TokenNameReply)
	if err := cli.send("tokenName", &vm.ItemArgs{Address: addr}, resp); err != nil {
		return "", err
	}
	return resp.Name, nil
}

func (cli *client) AuctionState(addr ids.ID) (*entity.AuctionState, error) {
	resp := new(vm.AuctionStateReply)
	if err := cli.send("auctionState", &vm.ItemArgs{Address: addr}, resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (cli *client) AuctionConfig(addr ids.ID) (*chain.AuctionConfig, error) {
	resp := new(vm.AuctionConfigReply)
	if err := cli.send("auctionConfig", &vm.ItemArgs{Address: addr}, resp); err != nil {
		return nil, err
	}
	return resp.Config, nil
}

func (cli *client) RoyaltyParams(addr ids.ID) (*chain.RoyaltyParams, error) {
	resp := new(vm.RoyaltyParamsReply)
	if err := cli.send("royaltyParams", &vm.ItemArgs{Address: addr}, resp); err != nil {
		return nil, err
	}
	return resp.Royalty, nil
}

func (cli *client) Balance(addr ids.ID) (uint64, error) {
	resp := new(vm.BalanceReply)
	if err := cli.send("balance", &vm.BalanceArgs{Address: addr}, resp); err != nil {
		return 0, err
	}
	return uint64(resp.Balance), nil
}

func (cli *client) IssueMsg(from ids.ID, to ids.ID, value uint64, body []byte) (bool, error) {
	resp := new(vm.IssueMsgReply)
	err := cli.send("issueMsg", &vm.IssueMsgArgs{
		From:  from,
		To:    to,
		Value: avajson.Uint64(value),
		Body:  body,
	}, resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) PollOwned(ctx context.Context, addr ids.ID) (*ids.ID, error) {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		data, err := cli.ItemData(addr)
		if err == nil && data != nil && data.Owner != nil {
			return data.Owner, nil
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

const pollInterval = time.Second
