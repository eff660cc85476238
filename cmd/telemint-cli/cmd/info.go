// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/client"
)

var infoCmd = &cobra.Command{
	Use:   "info [options] name",
	Short: "Reads the item state minted for a name",
	RunE:  infoFunc,
}

func infoFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "expected exactly 1 argument, got %d\n", len(args))
		os.Exit(128)
	}
	cli := client.New(uri, requestTimeout)
	addr, err := cli.ChildAddress(args[0])
	if err != nil {
		return err
	}
	color.Yellow("address: %s", addr)

	data, err := cli.ItemData(addr)
	if err != nil {
		return err
	}
	if data.Owner != nil {
		color.Green("owner: %s", *data.Owner)
	} else {
		color.Yellow("owner: none")
	}
	if data.Content != nil {
		if data.Content.Tag == chain.ContentTagPointerURI {
			color.Yellow("content: %s", data.Content.Payload)
		} else {
			color.Yellow("content: %d embedded bytes", len(data.Content.Payload))
		}
	}

	royalty, err := cli.RoyaltyParams(addr)
	if err != nil {
		return err
	}
	if royalty != nil {
		color.Yellow("royalty: %d/%d to %s", royalty.Numerator, royalty.Denominator, royalty.Destination)
	}

	balance, err := cli.Balance(addr)
	if err != nil {
		return err
	}
	color.Yellow("balance: %d", balance)
	return nil
}
