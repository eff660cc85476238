// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/client"
)

var auctionCmd = &cobra.Command{
	Use:   "auction [options] name",
	Short: "Reads the live auction state for a name",
	RunE:  auctionFunc,
}

func auctionFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "expected exactly 1 argument, got %d\n", len(args))
		os.Exit(128)
	}
	cli := client.New(uri, requestTimeout)
	addr, err := cli.ChildAddress(args[0])
	if err != nil {
		return err
	}

	state, err := cli.AuctionState(addr)
	if err != nil {
		return err
	}
	if state.Bidder != nil {
		color.Green("bid: %s by %s at %d", state.BidAmount, *state.Bidder, state.BidTime)
	} else {
		color.Yellow("no bids yet")
	}
	color.Yellow("minimum next bid: %s", state.MinNextBid)
	color.Yellow("ends at: %d", state.EndTime)

	cfg, err := cli.AuctionConfig(addr)
	if err != nil {
		return err
	}
	color.Yellow("beneficiary: %s", cfg.Beneficiary)
	if cfg.MaxBid != nil && cfg.MaxBid.Sign() > 0 {
		color.Yellow("instant completion at: %s", cfg.MaxBid)
	}
	return nil
}
