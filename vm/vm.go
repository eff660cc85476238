// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm wires the ledger behind a JSON-RPC query and submission
// surface.
package vm

import (
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/entity"
	"github.com/telemintvm/telemintvm/ledger"
)

const (
	// Name is the JSON-RPC service namespace.
	Name = "telemintvm"

	// PublicEndpoint is the HTTP path the public service mounts at.
	PublicEndpoint = "/public"
)

// VM hosts the ledger and serves it over JSON-RPC.
type VM struct {
	genesis *chain.Genesis
	ledger  *ledger.Ledger

	// clock is swappable for tests
	clock func() int64
}

// New builds a VM over db with the given genesis.
func New(db database.Database, genesis *chain.Genesis) (*VM, error) {
	l, err := ledger.New(db, genesis)
	if err != nil {
		return nil, err
	}
	return &VM{
		genesis: genesis,
		ledger:  l,
		clock:   func() int64 { return time.Now().Unix() },
	}, nil
}

// Genesis returns the deployment parameters.
func (vm *VM) Genesis() *chain.Genesis { return vm.genesis }

// Ledger returns the hosted ledger.
func (vm *VM) Ledger() *ledger.Ledger { return vm.ledger }

// Submit dispatches one external message at the current wall-clock time.
func (vm *VM) Submit(msg *entity.Message) error {
	return vm.ledger.Dispatch(vm.clock(), msg)
}

// CreateHandlers returns the HTTP handlers to mount.
func (vm *VM) CreateHandlers() (map[string]http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&PublicService{vm: vm}, Name); err != nil {
		return nil, err
	}
	return map[string]http.Handler{
		PublicEndpoint: server,
	}, nil
}
