// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pool is the issuer-side name inventory. An authority signs at
// most one live voucher per name; the pool's reserve-if-free check is what
// enforces that, so reservations go through a transactional store rather
// than a plain map.
package pool

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/versiondb"

	"github.com/telemintvm/telemintvm/codec"
	"github.com/telemintvm/telemintvm/parser"
)

var (
	ErrNameReserved = errors.New("name is already reserved")
	ErrNotReserved  = errors.New("name is not reserved")
	ErrNotReserver  = errors.New("caller did not reserve this name")
)

func init() {
	codec.RegisterType(&Reservation{})
}

// Reservation records who holds a name and since when. ExpiresAt mirrors
// the signed voucher's validity end so stale holds can be swept.
type Reservation struct {
	Name       string `serialize:"true" json:"name"`
	Reserver   string `serialize:"true" json:"reserver"`
	ReservedAt int64  `serialize:"true" json:"reservedAt"`
	ExpiresAt  int64  `serialize:"true" json:"expiresAt"`
}

// Pool hands out exclusive name reservations. Every mutation commits
// before returning, so a crash never leaves a half-taken name.
type Pool struct {
	db *versiondb.Database
}

// New opens a pool over db.
func New(db database.Database) *Pool {
	return &Pool{db: versiondb.New(db)}
}

func reservationKey(name string) []byte {
	return []byte(name)
}

// Reserve takes name for reserver if it is free or its previous hold has
// expired. Returns ErrNameReserved when someone else still holds it.
func (p *Pool) Reserve(name string, reserver string, now int64, expiresAt int64) error {
	if err := parser.CheckName(name); err != nil {
		return err
	}
	cur, ok, err := p.Reserved(name)
	if err != nil {
		return err
	}
	if ok && cur.Reserver != reserver && (cur.ExpiresAt == 0 || now <= cur.ExpiresAt) {
		return ErrNameReserved
	}

	raw, err := codec.Marshal(&Reservation{
		Name:       name,
		Reserver:   reserver,
		ReservedAt: now,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		return err
	}
	if err := p.db.Put(reservationKey(name), raw); err != nil {
		p.db.Abort()
		return err
	}
	return p.db.Commit()
}

// Release frees a name. Only the holder may release an unexpired hold.
func (p *Pool) Release(name string, reserver string) error {
	cur, ok, err := p.Reserved(name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotReserved
	}
	if cur.Reserver != reserver {
		return ErrNotReserver
	}
	if err := p.db.Delete(reservationKey(name)); err != nil {
		p.db.Abort()
		return err
	}
	return p.db.Commit()
}

// Reserved looks up the current reservation for name.
func (p *Pool) Reserved(name string) (*Reservation, bool, error) {
	raw, err := p.db.Get(reservationKey(name))
	if err == database.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	r := new(Reservation)
	if _, err := codec.Unmarshal(raw, r); err != nil {
		return nil, false, err
	}
	return r, true, nil
}

// All returns every live reservation.
func (p *Pool) All() ([]*Reservation, error) {
	it := p.db.NewIterator()
	defer it.Release()

	var rs []*Reservation
	for it.Next() {
		r := new(Reservation)
		if _, err := codec.Unmarshal(it.Value(), r); err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, it.Error()
}

// Close releases the underlying store.
func (p *Pool) Close() error {
	return p.db.Close()
}
