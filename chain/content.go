// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/telemintvm/telemintvm/cell"
)

// Content descriptor tags.
const (
	ContentTagEmbedded   = 0x00
	ContentTagPointerURI = 0x01
)

// ContentData is the displayable metadata of a minted name: either an
// inline text document or a URI the consumer fetches out-of-band.
type ContentData struct {
	Tag     uint8  `serialize:"true" json:"tag"`
	Payload string `serialize:"true" json:"payload"`
}

// EmbeddedContent wraps an inline document.
func EmbeddedContent(document string) *ContentData {
	return &ContentData{Tag: ContentTagEmbedded, Payload: document}
}

// PointerContent wraps a URI pointing at the real document.
func PointerContent(uri string) *ContentData {
	return &ContentData{Tag: ContentTagPointerURI, Payload: uri}
}

// Encode serializes the descriptor into a single cell.
func (c *ContentData) Encode() (*cell.Cell, error) {
	switch c.Tag {
	case ContentTagEmbedded, ContentTagPointerURI:
	default:
		return nil, ErrUnsupportedVariant
	}
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(c.Tag), 8); err != nil {
		return nil, err
	}
	if err := b.StoreBytes([]byte(c.Payload)); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// DecodeContent parses a content cell. An embedded document may decode to
// an empty payload (older encoders emit the tag alone); an unrecognized tag
// is never guessed at.
func DecodeContent(c *cell.Cell) (*ContentData, error) {
	s := c.Slice()
	tag, err := s.LoadUint(8)
	if err != nil {
		return nil, err
	}
	rem := s.BitsRemaining()
	if rem%8 != 0 {
		return nil, cell.ErrMalformedEncoding
	}
	switch uint8(tag) {
	case ContentTagEmbedded, ContentTagPointerURI:
	default:
		return nil, ErrUnsupportedVariant
	}
	payload, err := s.LoadBytes(rem / 8)
	if err != nil {
		return nil, err
	}
	return &ContentData{Tag: uint8(tag), Payload: string(payload)}, nil
}
