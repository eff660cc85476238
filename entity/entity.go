// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package entity implements the on-chain state machines: the factory that
// verifies mint vouchers and the items that run auctions. Entities process
// one message at a time; the host ledger provides atomicity, ordering and
// bounce-on-failure.
package entity

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
)

// Message is one inbound or outbound entity message. Body, when present,
// starts with a 32-bit opcode; a nil Body is a plain value transfer.
type Message struct {
	From  ids.ID
	To    ids.ID
	Value *big.Int
	Body  *cell.Cell

	// Bounce requests that a failed delivery returns the value to From.
	Bounce bool

	// Bounced marks a returned message; recipients keep the value but
	// never act on the body.
	Bounced bool
}

// Op reads the leading opcode of the body. A missing or truncated body is
// a plain transfer (OpNone).
func (m *Message) Op() uint32 {
	if m.Body == nil {
		return chain.OpNone
	}
	s := m.Body.Slice()
	op, err := s.LoadUint(32)
	if err != nil {
		return chain.OpNone
	}
	return uint32(op)
}

// BodySlice returns a reader positioned just past the opcode, or nil for a
// plain transfer.
func (m *Message) BodySlice() *cell.Slice {
	if m.Body == nil {
		return nil
	}
	s := m.Body.Slice()
	if _, err := s.LoadUint(32); err != nil {
		return nil
	}
	return s
}

// Context is the per-message execution environment the ledger hands to an
// entity. Outbound messages are queued and dispatched only after the
// receive completes successfully.
type Context struct {
	// Time is the ledger time of the triggering transaction, unix seconds.
	Time int64

	outbox []*Message
}

// Send queues an outbound message.
func (c *Context) Send(m *Message) {
	c.outbox = append(c.outbox, m)
}

// Outbox returns the queued outbound messages.
func (c *Context) Outbox() []*Message { return c.outbox }

// Entity is an independently addressed unit of on-chain logic.
type Entity interface {
	Address() ids.ID

	// Receive processes one message atomically. A non-nil error means no
	// state change occurred and the ledger should bounce if requested.
	Receive(ctx *Context, msg *Message) error

	// State returns the canonical persisted state cell.
	State() (*cell.Cell, error)
}
