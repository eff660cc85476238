// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/client"
)

var (
	fromAddr    string
	deployValue uint64
	pollItem    string
)

func init() {
	deployCmd.PersistentFlags().StringVar(
		&fromAddr,
		"from",
		"",
		"sender address the payment is attributed to",
	)
	deployCmd.PersistentFlags().Uint64Var(
		&deployValue,
		"value",
		0,
		"payment attached to the deploy",
	)
	deployCmd.PersistentFlags().StringVar(
		&pollItem,
		"poll-name",
		"",
		"after submitting, poll this name's item until owned",
	)
}

var deployCmd = &cobra.Command{
	Use:   "deploy [options] signed-deploy-hex",
	Short: "Submits a signed deploy message to the factory",
	RunE:  deployFunc,
}

func deployFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "expected exactly 1 argument, got %d\n", len(args))
		os.Exit(128)
	}
	body, err := hex.DecodeString(args[0])
	if err != nil {
		return err
	}
	from, err := ids.FromString(fromAddr)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}

	cli := client.New(uri, requestTimeout, client.WithRetry(client.DefaultRetryPolicy()))
	ok, err := cli.IssueMsg(from, ids.Empty, deployValue, body)
	if err != nil {
		return err
	}
	if !ok {
		color.Red("deploy not accepted")
		return nil
	}
	color.Green("deploy accepted")

	if pollItem == "" {
		return nil
	}
	addr, err := cli.ChildAddress(pollItem)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	owner, err := cli.PollOwned(ctx, addr)
	if err != nil {
		return err
	}
	color.Green("%q owned by %s", pollItem, *owner)
	return nil
}
