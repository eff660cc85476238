// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cell

import (
	"errors"
)

var (
	// Build Correctness
	ErrCellOverflow   = errors.New("cell data capacity exceeded")
	ErrTooManyRefs    = errors.New("too many cell references")
	ErrInvalidBitSize = errors.New("bit size must be in [0,64]")
	ErrAmountNil      = errors.New("amount is nil")
	ErrAmountNegative = errors.New("amount is negative")
	ErrAmountTooLarge = errors.New("amount exceeds coin encoding range")

	// Read Correctness
	ErrCellUnderflow = errors.New("cell slice underflow")

	// Wire Correctness
	ErrMalformedEncoding = errors.New("malformed cell encoding")
)
