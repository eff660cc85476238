// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"math/big"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/entity"
)

// 0x0/ (item state cells)
//   -> [item address]
// 0x1/ (balance records)
//   -> [account address]
// 0x2/ (factory state cell)

const (
	itemPrefix    = 0x0
	balancePrefix = 0x1
	factoryPrefix = 0x2

	delimiter = '/'
)

func itemKey(addr ids.ID) []byte {
	return append([]byte{itemPrefix, delimiter}, addr[:]...)
}

func balanceKey(addr ids.ID) []byte {
	return append([]byte{balancePrefix, delimiter}, addr[:]...)
}

func factoryKey(addr ids.ID) []byte {
	return append([]byte{factoryPrefix, delimiter}, addr[:]...)
}

// PutItem persists an item's canonical state cell.
func PutItem(db database.Database, i *entity.Item) error {
	state, err := i.State()
	if err != nil {
		return err
	}
	return db.Put(itemKey(i.Address()), cell.Encode(state))
}

// GetItem loads an item entity, reporting whether it exists.
func GetItem(db database.Database, addr ids.ID) (*entity.Item, bool, error) {
	k := itemKey(addr)
	has, err := db.Has(k)
	if err != nil {
		return nil, false, err
	}
	if !has {
		return nil, false, nil
	}
	raw, err := db.Get(k)
	if err != nil {
		return nil, false, err
	}
	c, err := cell.Decode(raw)
	if err != nil {
		return nil, false, err
	}
	i, err := entity.LoadItem(addr, c)
	if err != nil {
		return nil, false, err
	}
	return i, true, nil
}

// PutBalance persists an account balance, deleting zero records.
func PutBalance(db database.Database, addr ids.ID, amount *big.Int) error {
	k := balanceKey(addr)
	if amount == nil || amount.Sign() == 0 {
		return db.Delete(k)
	}
	return db.Put(k, amount.Bytes())
}

// GetBalance loads an account balance; missing records are zero.
func GetBalance(db database.Database, addr ids.ID) (*big.Int, error) {
	raw, err := db.Get(balanceKey(addr))
	if err == database.ErrNotFound {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

// PutFactory persists the factory's state cell.
func PutFactory(db database.Database, f *entity.Factory) error {
	state, err := f.State()
	if err != nil {
		return err
	}
	return db.Put(factoryKey(f.Address()), cell.Encode(state))
}

// AllItems loads every persisted item entity.
func AllItems(db database.Database) ([]*entity.Item, error) {
	it := db.NewIteratorWithPrefix([]byte{itemPrefix, delimiter})
	defer it.Release()

	var items []*entity.Item
	for it.Next() {
		k := it.Key()
		addr, err := ids.ToID(k[2:])
		if err != nil {
			return nil, err
		}
		c, err := cell.Decode(it.Value())
		if err != nil {
			return nil, err
		}
		i, err := entity.LoadItem(addr, c)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, it.Error()
}
