// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/telemintvm/telemintvm/cell"
	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/crypto/ed25519"
	"github.com/telemintvm/telemintvm/pool"
)

var (
	poolDir     string
	validFor    time.Duration
	contentURI  string
	beneficiary string
	minBid      uint64
	maxBid      uint64
	bidStep     uint8
	extendSecs  uint32
	durationSec uint32
	forceSender string
)

func init() {
	voucherCmd.PersistentFlags().StringVar(
		&poolDir,
		"pool-dir",
		".telemint-pool",
		"name reservation database directory",
	)
	voucherCmd.PersistentFlags().DurationVar(
		&validFor,
		"valid-for",
		24*time.Hour,
		"voucher validity window length",
	)
	voucherCmd.PersistentFlags().StringVar(
		&contentURI,
		"content-uri",
		"",
		"item metadata URI (defaults to a name-derived path)",
	)
	voucherCmd.PersistentFlags().StringVar(
		&beneficiary,
		"beneficiary",
		"",
		"auction proceeds destination address",
	)
	voucherCmd.PersistentFlags().Uint64Var(
		&minBid,
		"min-bid",
		100_000_000,
		"initial minimum bid",
	)
	voucherCmd.PersistentFlags().Uint64Var(
		&maxBid,
		"max-bid",
		0,
		"instant-completion bid, 0 for unbounded",
	)
	voucherCmd.PersistentFlags().Uint8Var(
		&bidStep,
		"bid-step",
		5,
		"minimum bid increment percent",
	)
	voucherCmd.PersistentFlags().Uint32Var(
		&extendSecs,
		"min-extend",
		300,
		"seconds a late bid extends the auction by",
	)
	voucherCmd.PersistentFlags().Uint32Var(
		&durationSec,
		"duration",
		3600,
		"auction duration in seconds, 0 with max-bid == min-bid for direct sale",
	)
	voucherCmd.PersistentFlags().StringVar(
		&forceSender,
		"force-sender",
		"",
		"restrict redemption to this sender address",
	)
}

var voucherCmd = &cobra.Command{
	Use:   "voucher [options] name",
	Short: "Reserves a name and emits a signed deploy message",
	RunE:  voucherFunc,
}

func loadGenesis() (*chain.Genesis, error) {
	b, err := os.ReadFile(genesisFile)
	if err != nil {
		return nil, err
	}
	g := new(chain.Genesis)
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}

func voucherFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "expected exactly 1 argument, got %d\n", len(args))
		os.Exit(128)
	}
	name := args[0]

	priv, err := ed25519.LoadPrivateKeyFile(privateKeyFile)
	if err != nil {
		return err
	}
	g, err := loadGenesis()
	if err != nil {
		return err
	}
	dest, err := ids.FromString(beneficiary)
	if err != nil {
		return fmt.Errorf("invalid beneficiary: %w", err)
	}

	now := time.Now().Unix()
	till := now + int64(validFor/time.Second)

	// one live voucher per name: reserve before signing
	db, err := leveldb.New(poolDir, nil, logging.NoLog{})
	if err != nil {
		return err
	}
	p := pool.New(db)
	defer p.Close()
	reserver := hex.EncodeToString(priv.PublicKey().Bytes())
	if err := p.Reserve(name, reserver, now, till); err != nil {
		return err
	}

	metaURI := contentURI
	if metaURI == "" {
		metaURI = g.CollectionContent + "/" + name + ".json"
	}
	v := &chain.MintVoucher{
		SubPoolID:  g.SubPoolID,
		ValidSince: uint32(now),
		ValidTill:  uint32(till),
		Name:       name,
		Content:    chain.PointerContent(metaURI),
		AuctionConfig: &chain.AuctionConfig{
			Beneficiary:       dest,
			InitialMinBid:     new(big.Int).SetUint64(minBid),
			MaxBid:            new(big.Int).SetUint64(maxBid),
			MinBidStepPercent: bidStep,
			MinExtendSeconds:  extendSecs,
			DurationSeconds:   durationSec,
		},
	}
	if forceSender != "" {
		sender, err := ids.FromString(forceSender)
		if err != nil {
			return fmt.Errorf("invalid force-sender: %w", err)
		}
		v.Restrictions = &chain.Restrictions{ForceSender: &sender}
	}

	sig, err := v.Sign(priv)
	if err != nil {
		return err
	}
	body, err := chain.NewSignedDeploy(v, sig)
	if err != nil {
		return err
	}

	color.Green("reserved %q until %d", name, till)
	color.Yellow("item address: %s", chain.ItemAddress(chain.ItemIndex(name), chain.FactoryAddress(g), g.ItemCodeHash))
	fmt.Println(hex.EncodeToString(cell.Encode(body)))
	return nil
}
