// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "telemint-cli" implements telemintvm client operation interface.
package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

const (
	requestTimeout = 30 * time.Second
	fsModeWrite    = 0o600
)

var (
	privateKeyFile string
	genesisFile    string
	uri            string
	workDir        string

	rootCmd = &cobra.Command{
		Use:        "telemint-cli",
		Short:      "TelemintVM client CLI",
		SuggestFor: []string{"telemint-cli", "telemintcli", "telemintctl"},
	}
)

func init() {
	p, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	workDir = p

	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		genesisCmd,
		authorityCmd,
		voucherCmd,
		childAddrCmd,
		deployCmd,
		infoCmd,
		auctionCmd,
	)

	rootCmd.PersistentFlags().StringVar(
		&privateKeyFile,
		"private-key-file",
		".telemint-cli-pk",
		"authority private key file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		filepath.Join(workDir, "genesis.json"),
		"genesis file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&uri,
		"endpoint",
		"http://127.0.0.1:9090",
		"RPC endpoint for VM",
	)
}

func Execute() error {
	return rootCmd.Execute()
}
