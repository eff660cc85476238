// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
	"github.com/telemintvm/telemintvm/parser"
)

// MintVoucher is the signable, time-bounded authorization to mint one
// specific name under specific auction/royalty/restriction terms. It is
// immutable once signed and identified by the digest of its encoding.
type MintVoucher struct {
	SubPoolID  uint32 `serialize:"true" json:"subPoolId"`
	ValidSince uint32 `serialize:"true" json:"validSince"`
	ValidTill  uint32 `serialize:"true" json:"validTill"`
	Name       string `serialize:"true" json:"name"`

	Content       *ContentData   `serialize:"true" json:"content"`
	AuctionConfig *AuctionConfig `serialize:"true" json:"auctionConfig"`
	RoyaltyParams *RoyaltyParams `serialize:"true" json:"royaltyParams,omitempty"`
	Restrictions  *Restrictions  `serialize:"true" json:"restrictions,omitempty"`
}

// Verify returns an error if the voucher could never be redeemed.
func (v *MintVoucher) Verify() error {
	if err := parser.CheckName(v.Name); err != nil {
		return err
	}
	if v.Content == nil || v.AuctionConfig == nil {
		return cell.ErrMalformedEncoding
	}
	return v.AuctionConfig.Verify()
}

// Encode serializes the unsigned voucher. The layout is canonical: the
// digest of the returned cell is the voucher's identity and the value
// signatures are computed over.
func (v *MintVoucher) Encode() (*cell.Cell, error) {
	if err := v.Verify(); err != nil {
		return nil, err
	}
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(v.SubPoolID), 32); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(v.ValidSince), 32); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(v.ValidTill), 32); err != nil {
		return nil, err
	}
	name := []byte(v.Name)
	if len(name) > parser.MaxNameSize {
		return nil, parser.ErrInvalidName
	}
	if err := b.StoreUint(uint64(len(name)), 8); err != nil {
		return nil, err
	}
	if err := b.StoreBytes(name); err != nil {
		return nil, err
	}

	content, err := v.Content.Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(content); err != nil {
		return nil, err
	}
	auction, err := v.AuctionConfig.Encode()
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(auction); err != nil {
		return nil, err
	}

	var royalty *cell.Cell
	if v.RoyaltyParams != nil {
		if royalty, err = v.RoyaltyParams.Encode(); err != nil {
			return nil, err
		}
	}
	if err := b.StoreMaybeRef(royalty); err != nil {
		return nil, err
	}
	var restrictions *cell.Cell
	if v.Restrictions != nil {
		if restrictions, err = v.Restrictions.Encode(); err != nil {
			return nil, err
		}
	}
	if err := b.StoreMaybeRef(restrictions); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// Digest returns the canonical digest of the voucher's encoding.
func (v *MintVoucher) Digest() ([]byte, error) {
	c, err := v.Encode()
	if err != nil {
		return nil, err
	}
	return c.Digest(), nil
}

// Sign produces the detached 64-byte authority signature over the digest.
func (v *MintVoucher) Sign(priv ed25519.PrivateKey) ([]byte, error) {
	digest, err := v.Digest()
	if err != nil {
		return nil, err
	}
	return priv.SignHash(digest)
}

// DecodeMintVoucher parses an unsigned voucher cell.
func DecodeMintVoucher(c *cell.Cell) (*MintVoucher, error) {
	s := c.Slice()
	subPool, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	since, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	till, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	nameLen, err := s.LoadUint(8)
	if err != nil {
		return nil, err
	}
	name, err := s.LoadBytes(int(nameLen))
	if err != nil {
		return nil, err
	}

	contentCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	content, err := DecodeContent(contentCell)
	if err != nil {
		return nil, err
	}
	auctionCell, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	auction, err := DecodeAuctionConfig(auctionCell)
	if err != nil {
		return nil, err
	}

	v := &MintVoucher{
		SubPoolID:     uint32(subPool),
		ValidSince:    uint32(since),
		ValidTill:     uint32(till),
		Name:          string(name),
		Content:       content,
		AuctionConfig: auction,
	}
	royaltyCell, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	if royaltyCell != nil {
		if v.RoyaltyParams, err = DecodeRoyaltyParams(royaltyCell); err != nil {
			return nil, err
		}
	}
	restrictionsCell, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	if restrictionsCell != nil {
		if v.Restrictions, err = DecodeRestrictions(restrictionsCell); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// NewSignedDeploy builds the factory-bound deploy message body:
// opcode, detached signature, then a reference to the unsigned voucher.
func NewSignedDeploy(v *MintVoucher, signature []byte) (*cell.Cell, error) {
	if len(signature) != ed25519.SignatureSize {
		return nil, ErrInvalidSignature
	}
	unsigned, err := v.Encode()
	if err != nil {
		return nil, err
	}
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(OpDeploy), 32); err != nil {
		return nil, err
	}
	if err := b.StoreBytes(signature); err != nil {
		return nil, err
	}
	if err := b.StoreRef(unsigned); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// ParseSignedDeploy reads {signature, voucher} from a deploy body slice
// positioned just past the opcode.
func ParseSignedDeploy(s *cell.Slice) ([]byte, *MintVoucher, error) {
	signature, err := s.LoadBytes(ed25519.SignatureSize)
	if err != nil {
		return nil, nil, err
	}
	unsigned, err := s.LoadRef()
	if err != nil {
		return nil, nil, err
	}
	v, err := DecodeMintVoucher(unsigned)
	if err != nil {
		return nil, nil, err
	}
	return signature, v, nil
}
