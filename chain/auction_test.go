// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"math/big"
	"reflect"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
)

func TestAuctionConfigRoundTrip(t *testing.T) {
	t.Parallel()

	in := &AuctionConfig{
		Beneficiary:       ids.GenerateTestID(),
		InitialMinBid:     big.NewInt(100),
		MaxBid:            big.NewInt(100_000),
		MinBidStepPercent: 255,
		MinExtendSeconds:  3600,
		DurationSeconds:   86400,
	}
	c, err := in.Encode()
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeAuctionConfig(c)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestAuctionConfigVerify(t *testing.T) {
	t.Parallel()

	tt := []struct {
		cfg *AuctionConfig
		err error
	}{
		{
			cfg: &AuctionConfig{InitialMinBid: big.NewInt(1), MaxBid: big.NewInt(0), MinBidStepPercent: 0},
			err: ErrInvalidBidStep,
		},
		{
			cfg: &AuctionConfig{InitialMinBid: nil, MaxBid: big.NewInt(0), MinBidStepPercent: 5},
			err: ErrMissingAmount,
		},
		{
			cfg: &AuctionConfig{InitialMinBid: big.NewInt(0), MaxBid: big.NewInt(0), MinBidStepPercent: 5},
			err: ErrMissingAmount,
		},
		{
			cfg: &AuctionConfig{InitialMinBid: big.NewInt(1), MaxBid: nil, MinBidStepPercent: 5},
			err: ErrMissingAmount,
		},
		{
			cfg: &AuctionConfig{InitialMinBid: big.NewInt(1), MaxBid: big.NewInt(0), MinBidStepPercent: 1},
			err: nil,
		},
	}
	for i, tv := range tt {
		if err := tv.cfg.Verify(); !errors.Is(err, tv.err) {
			t.Fatalf("#%d: expected %v, got %v", i, tv.err, err)
		}
	}
}

func TestMinimumNextBid(t *testing.T) {
	t.Parallel()

	cfg := &AuctionConfig{
		InitialMinBid:     big.NewInt(100),
		MaxBid:            big.NewInt(0),
		MinBidStepPercent: 5,
	}

	tt := []struct {
		prev *big.Int
		want int64
	}{
		{prev: nil, want: 100},
		{prev: big.NewInt(0), want: 100},
		{prev: big.NewInt(50), want: 100},  // step below the floor
		{prev: big.NewInt(100), want: 105}, // 104 rejected, 105 accepted
		{prev: big.NewInt(105), want: 110}, // 110.25 floors to 110
		{prev: big.NewInt(1000), want: 1050},
	}
	for i, tv := range tt {
		got := cfg.MinimumNextBid(tv.prev)
		if got.Int64() != tv.want {
			t.Fatalf("#%d: got %v, want %d", i, got, tv.want)
		}
	}
}

func TestIsDirectSale(t *testing.T) {
	t.Parallel()

	tt := []struct {
		cfg  *AuctionConfig
		want bool
	}{
		{
			cfg:  &AuctionConfig{InitialMinBid: big.NewInt(100), MaxBid: big.NewInt(100), DurationSeconds: 0, MinBidStepPercent: 5},
			want: true,
		},
		{
			cfg:  &AuctionConfig{InitialMinBid: big.NewInt(100), MaxBid: big.NewInt(100), DurationSeconds: 60, MinBidStepPercent: 5},
			want: false,
		},
		{
			cfg:  &AuctionConfig{InitialMinBid: big.NewInt(100), MaxBid: big.NewInt(200), DurationSeconds: 0, MinBidStepPercent: 5},
			want: false,
		},
		{
			cfg:  &AuctionConfig{InitialMinBid: big.NewInt(100), MaxBid: big.NewInt(0), DurationSeconds: 0, MinBidStepPercent: 5},
			want: false, // unbounded max bid is never a direct sale
		},
	}
	for i, tv := range tt {
		if got := tv.cfg.IsDirectSale(); got != tv.want {
			t.Fatalf("#%d: got %v, want %v", i, got, tv.want)
		}
	}
}
