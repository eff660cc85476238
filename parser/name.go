// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package parser defines mintable-name parsing operations.
package parser

import (
	"errors"
	"regexp"
)

const (
	// MaxNameSize bounds a name's wire encoding (length-prefixed, u8).
	MaxNameSize = 255
)

var (
	ErrInvalidName = errors.New("names must be ^[a-z0-9_]{1,64}$")

	reg *regexp.Regexp
)

func init() {
	// The voucher encoder stores the name inline next to the validity
	// window, so the bound stays well under one cell's data capacity.
	reg = regexp.MustCompile("^[a-z0-9_]{1,64}$")
}

// CheckName returns an error if the mintable name format is invalid.
func CheckName(name string) error {
	if !reg.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}
