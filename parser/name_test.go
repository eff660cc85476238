// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package parser

import (
	"strings"
	"testing"
)

func TestCheckName(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string
		err  error
	}{
		{name: "123456", err: nil},
		{name: "alice_bob", err: nil},
		{name: strings.Repeat("a", 64), err: nil},
		{name: "", err: ErrInvalidName},
		{name: "UPPER", err: ErrInvalidName},
		{name: "with space", err: ErrInvalidName},
		{name: "dash-ed", err: ErrInvalidName},
		{name: strings.Repeat("a", 65), err: ErrInvalidName},
	}
	for i, tv := range tt {
		if err := CheckName(tv.name); err != tv.err {
			t.Fatalf("#%d: expected %v, got %v", i, tv.err, err)
		}
	}
}
