// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/hex"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/telemintvm/telemintvm/crypto/ed25519"
)

// Genesis fixes the deployment-time parameters of a factory: which
// sub-pool it serves, whose vouchers it trusts and what it charges for
// forwarding. Mutated only by balance top-ups after deployment.
type Genesis struct {
	SubPoolID uint32 `serialize:"true" json:"subPoolId"`

	// AuthorityPublicKey is the hex-encoded ed25519 key vouchers must be
	// signed with.
	AuthorityPublicKey string `serialize:"true" json:"authorityPublicKey"`

	// CollectionContent is the pointer URI of the collection metadata.
	CollectionContent string `serialize:"true" json:"collectionContent"`

	// ItemCodeHash identifies the item template code used for
	// deterministic child addressing.
	ItemCodeHash ids.ID `serialize:"true" json:"itemCodeHash"`

	Royalty *RoyaltyParams `serialize:"true" json:"royalty,omitempty"`

	// MinStorageReserve is withheld on every deploy so the child can pay
	// its own storage rent.
	MinStorageReserve uint64 `serialize:"true" json:"minStorageReserve"`

	// FactoryGasMargin is the factory's own processing cut per deploy.
	FactoryGasMargin uint64 `serialize:"true" json:"factoryGasMargin"`
}

// DefaultGenesis returns a genesis with workable defaults and no
// authority key.
func DefaultGenesis() *Genesis {
	return &Genesis{
		SubPoolID:         1,
		CollectionContent: "https://example.invalid/collection.json",
		ItemCodeHash:      ItemIndex("telemint-item-v1"),
		MinStorageReserve: 50_000_000,
		FactoryGasMargin:  10_000_000,
	}
}

// Authority decodes the configured authority public key.
func (g *Genesis) Authority() (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(g.AuthorityPublicKey)
	if err != nil {
		return nil, err
	}
	return ed25519.LoadPublicKey(raw)
}

// SetAuthority records pub as the trusted voucher signer.
func (g *Genesis) SetAuthority(pub ed25519.PublicKey) {
	g.AuthorityPublicKey = hex.EncodeToString(pub.Bytes())
}
