// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
)

var (
	subPoolID          uint32
	collectionContent  string
	itemCodeSeed       string
	royaltyNumerator   int
	royaltyDenominator int
	royaltyDestination string
	minStorageReserve  uint64
	factoryGasMargin   uint64
)

func init() {
	genesisCmd.PersistentFlags().Uint32Var(
		&subPoolID,
		"sub-pool",
		1,
		"sub-pool this factory serves",
	)
	genesisCmd.PersistentFlags().StringVar(
		&collectionContent,
		"collection-content",
		"https://example.invalid/collection.json",
		"collection metadata URI",
	)
	genesisCmd.PersistentFlags().StringVar(
		&itemCodeSeed,
		"item-code-seed",
		"telemint-item-v1",
		"seed string hashed into the item template code hash",
	)
	genesisCmd.PersistentFlags().IntVar(
		&royaltyNumerator,
		"royalty-numerator",
		0,
		"default royalty numerator",
	)
	genesisCmd.PersistentFlags().IntVar(
		&royaltyDenominator,
		"royalty-denominator",
		100,
		"default royalty denominator",
	)
	genesisCmd.PersistentFlags().StringVar(
		&royaltyDestination,
		"royalty-destination",
		"",
		"default royalty destination address",
	)
	genesisCmd.PersistentFlags().Uint64Var(
		&minStorageReserve,
		"min-storage-reserve",
		50_000_000,
		"amount withheld per deploy for item storage rent",
	)
	genesisCmd.PersistentFlags().Uint64Var(
		&factoryGasMargin,
		"factory-gas-margin",
		10_000_000,
		"factory processing cut per deploy",
	)
}

var genesisCmd = &cobra.Command{
	Use:   "genesis [options]",
	Short: "Creates a new genesis in the default location",
	RunE:  genesisFunc,
}

func genesisFunc(cmd *cobra.Command, args []string) error {
	priv, err := ed25519.LoadPrivateKeyFile(privateKeyFile)
	if err != nil {
		return err
	}

	g := chain.DefaultGenesis()
	g.SubPoolID = subPoolID
	g.CollectionContent = collectionContent
	g.ItemCodeHash = chain.ItemIndex(itemCodeSeed)
	g.MinStorageReserve = minStorageReserve
	g.FactoryGasMargin = factoryGasMargin
	g.SetAuthority(priv.PublicKey())

	if royaltyDestination != "" {
		dest, err := ids.FromString(royaltyDestination)
		if err != nil {
			return err
		}
		royalty, err := chain.NewRoyaltyParams(royaltyNumerator, royaltyDenominator, dest)
		if err != nil {
			return err
		}
		g.Royalty = royalty
	}

	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
		return err
	}
	color.Green("created genesis %s (factory %s)", genesisFile, chain.FactoryAddress(g))
	return nil
}
