// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
)

var (
	// Voucher Correctness
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrVoucherExpired     = errors.New("voucher expired")
	ErrVoucherNotYetValid = errors.New("voucher not yet valid")
	ErrWrongSubPool       = errors.New("wrong sub-pool identifier")
	ErrSenderNotAllowed   = errors.New("sender not allowed")
	ErrInsufficientFunds  = errors.New("insufficient funds")

	// Descriptor Correctness
	ErrUnsupportedVariant = errors.New("unsupported descriptor variant")
	ErrInvalidRoyalty     = errors.New("invalid royalty fraction")
	ErrInvalidBidStep     = errors.New("bid step percent must be in [1,255]")
	ErrMissingAmount      = errors.New("missing bid amount")

	// Auction Correctness
	ErrBidTooLow       = errors.New("bid too low")
	ErrAuctionHasBids  = errors.New("auction already has bids")
	ErrAuctionActive   = errors.New("auction is active")
	ErrNoActiveAuction = errors.New("no active auction")
	ErrNotAuthorized   = errors.New("sender is not authorized")

	// Entity Correctness
	ErrNotInitialized     = errors.New("entity not initialized")
	ErrAlreadyInitialized = errors.New("entity already initialized")
	ErrUnknownOperation   = errors.New("unknown operation")
)
