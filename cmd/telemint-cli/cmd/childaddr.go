// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/client"
)

var childAddrCmd = &cobra.Command{
	Use:   "child-addr [options] name",
	Short: "Derives the item address a name would mint at",
	RunE:  childAddrFunc,
}

func childAddrFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "expected exactly 1 argument, got %d\n", len(args))
		os.Exit(128)
	}
	cli := client.New(uri, requestTimeout)
	addr, err := cli.ChildAddress(args[0])
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}
