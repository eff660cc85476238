// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/crypto/ed25519"
)

var overwriteKey bool

func init() {
	authorityCmd.PersistentFlags().BoolVar(
		&overwriteKey,
		"overwrite",
		false,
		"overwrite an existing key file",
	)
}

var authorityCmd = &cobra.Command{
	Use:   "authority [options]",
	Short: "Generates a new authority signing key",
	RunE:  authorityFunc,
}

func authorityFunc(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(privateKeyFile); err == nil && !overwriteKey {
		return errors.New("key file already exists (pass --overwrite to replace)")
	}
	priv, err := ed25519.NewPrivateKey()
	if err != nil {
		return err
	}
	if err := ed25519.WritePrivateKeyFile(privateKeyFile, priv); err != nil {
		return err
	}
	pub := priv.PublicKey()
	color.Green("wrote authority key %s", privateKeyFile)
	color.Yellow("public key: %s", hex.EncodeToString(pub.Bytes()))
	color.Yellow("address: %s", pub.Address())
	return nil
}
