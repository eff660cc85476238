// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/ava-labs/avalanchego/ids"
	"golang.org/x/crypto/sha3"
)

// ItemIndex hashes a name into its 256-bit item index. The index is the
// sole collision domain for uniqueness: equal names always map to the same
// index and therefore the same child address.
func ItemIndex(name string) ids.ID {
	h := sha3.Sum256([]byte(name))
	id, err := ids.ToID(h[:])
	if err != nil {
		panic(err) // sha3.Sum256 is always 32 bytes
	}
	return id
}

// ItemAddress derives the deterministic child address of an item from its
// index, the deploying factory and the item template code hash. It is a
// pure function: the same inputs always yield the same address, which is
// what lets the factory forward funds before the item exists.
func ItemAddress(index ids.ID, factory ids.ID, itemCodeHash ids.ID) ids.ID {
	pre := make([]byte, 0, 96)
	pre = append(pre, itemCodeHash[:]...)
	pre = append(pre, factory[:]...)
	pre = append(pre, index[:]...)
	h := sha3.Sum256(pre)
	id, err := ids.ToID(h[:])
	if err != nil {
		panic(err)
	}
	return id
}

// FactoryAddress derives the factory's own deterministic address from its
// deployment parameters: sub-pool, authority key and item template code.
func FactoryAddress(g *Genesis) ids.ID {
	var subPool [4]byte
	binary.BigEndian.PutUint32(subPool[:], g.SubPoolID)
	authority, err := hex.DecodeString(g.AuthorityPublicKey)
	if err != nil {
		authority = nil
	}
	pre := make([]byte, 0, 4+len(authority)+32)
	pre = append(pre, subPool[:]...)
	pre = append(pre, authority...)
	pre = append(pre, g.ItemCodeHash[:]...)
	h := sha3.Sum256(pre)
	id, err := ids.ToID(h[:])
	if err != nil {
		panic(err)
	}
	return id
}
