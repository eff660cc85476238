// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the host execution model: each entity
// processes one inbound message at a time, atomically; cross-entity sends
// are fire-and-forget with best-effort bounce-on-failure. One external
// dispatch and everything it cascades into commit as a unit.
package ledger

import (
	"math/big"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
	log "github.com/inconshreveable/log15"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/entity"
)

// Ledger hosts the factory and its item entities.
type Ledger struct {
	lock sync.RWMutex

	db      *versiondb.Database
	genesis *chain.Genesis
	factory *entity.Factory

	items    map[ids.ID]*entity.Item
	balances map[ids.ID]*big.Int
}

// New opens a ledger over db, deploying the factory described by genesis
// and reloading any persisted entities.
func New(db database.Database, genesis *chain.Genesis) (*Ledger, error) {
	factory, err := entity.NewFactory(genesis)
	if err != nil {
		return nil, err
	}
	vdb := versiondb.New(db)
	l := &Ledger{
		db:       vdb,
		genesis:  genesis,
		factory:  factory,
		items:    make(map[ids.ID]*entity.Item),
		balances: make(map[ids.ID]*big.Int),
	}

	items, err := AllItems(vdb)
	if err != nil {
		return nil, err
	}
	for _, i := range items {
		l.items[i.Address()] = i
	}

	if err := PutFactory(vdb, factory); err != nil {
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, err
	}
	log.Info("ledger open", "factory", factory.Address(), "items", len(items))
	return l, nil
}

// Factory returns the hosted factory entity.
func (l *Ledger) Factory() *entity.Factory {
	return l.factory
}

// Item returns the item entity at addr, if one has been touched.
func (l *Ledger) Item(addr ids.ID) (*entity.Item, bool) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	i, ok := l.items[addr]
	return i, ok
}

// Balance returns the spendable balance of any address.
func (l *Ledger) Balance(addr ids.ID) *big.Int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return new(big.Int).Set(l.balance(addr))
}

func (l *Ledger) balance(addr ids.ID) *big.Int {
	if b, ok := l.balances[addr]; ok {
		return b
	}
	b, err := GetBalance(l.db, addr)
	if err != nil {
		b = new(big.Int)
	}
	l.balances[addr] = b
	return b
}

// Dispatch executes one external message at ledger time now, cascading
// entity→entity sends in FIFO order until the system quiesces, then
// commits atomically. The returned error reflects only the external
// message: internal failures surface solely as bounces, never as
// structured values crossing an entity boundary.
func (l *Ledger) Dispatch(now int64, msg *entity.Message) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	queue := []*entity.Message{msg}
	var extErr error
	for n := 0; len(queue) > 0; n++ {
		m := queue[0]
		queue = queue[1:]
		out, err := l.deliver(now, m)
		if err != nil && n == 0 {
			extErr = err
		}
		queue = append(queue, out...)
	}

	if err := l.persist(); err != nil {
		l.db.Abort()
		return err
	}
	if err := l.db.Commit(); err != nil {
		l.db.Abort()
		return err
	}
	return extErr
}

// deliver routes one message. A failed receive leaves the recipient
// untouched and, for bounceable messages, returns the value to the
// sender.
func (l *Ledger) deliver(now int64, m *entity.Message) ([]*entity.Message, error) {
	value := m.Value
	if value == nil {
		value = new(big.Int)
	}

	ent, fresh := l.entityAt(m)
	if ent == nil {
		// external account: the value just lands there
		l.balance(m.To).Add(l.balance(m.To), value)
		return nil, nil
	}

	snapshot, err := ent.State()
	if err != nil {
		return nil, err
	}
	l.balance(m.To).Add(l.balance(m.To), value)

	ctx := &entity.Context{Time: now}
	if err := ent.Receive(ctx, m); err != nil {
		log.Debug("message rejected",
			"to", m.To, "op", m.Op(), "err", err,
		)
		l.balance(m.To).Sub(l.balance(m.To), value)
		l.restore(ent, snapshot, fresh)
		if m.Bounce && value.Sign() > 0 {
			return []*entity.Message{{
				From:    m.To,
				To:      m.From,
				Value:   value,
				Bounced: true,
			}}, err
		}
		return nil, err
	}

	out := ctx.Outbox()
	for _, o := range out {
		if o.Value != nil && o.Value.Sign() > 0 {
			l.balance(m.To).Sub(l.balance(m.To), o.Value)
		}
	}
	return out, nil
}

// entityAt resolves the recipient entity. An init message aimed at an
// unoccupied address conjures the uninitialized item there: the address
// is computable before anything exists on the ledger.
func (l *Ledger) entityAt(m *entity.Message) (entity.Entity, bool) {
	if m.To == l.factory.Address() {
		return l.factory, false
	}
	if i, ok := l.items[m.To]; ok {
		return i, false
	}
	if !m.Bounced && m.Op() == chain.OpItemDeploy {
		i := entity.NewItem(m.To)
		l.items[m.To] = i
		return i, true
	}
	return nil, false
}

// restore rewinds an entity after a failed receive. Freshly conjured
// items are discarded outright; established items reload their snapshot.
func (l *Ledger) restore(ent entity.Entity, snapshot *cell.Cell, fresh bool) {
	i, ok := ent.(*entity.Item)
	if !ok {
		// the factory holds no per-message mutable state
		return
	}
	if fresh {
		delete(l.items, i.Address())
		return
	}
	prev, err := entity.LoadItem(i.Address(), snapshot)
	if err != nil {
		log.Error("item snapshot corrupt", "item", i.Address(), "err", err)
		return
	}
	l.items[i.Address()] = prev
}

func (l *Ledger) persist() error {
	for _, i := range l.items {
		if err := PutItem(l.db, i); err != nil {
			return err
		}
	}
	for addr, b := range l.balances {
		if err := PutBalance(l.db, addr, b); err != nil {
			return err
		}
	}
	return nil
}
