// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "telemintd" serves a telemint ledger over HTTP JSON-RPC.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/utils/logging"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/telemintvm/telemintvm/chain"
	"github.com/telemintvm/telemintvm/version"
	"github.com/telemintvm/telemintvm/vm"
)

func init() {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlDebug, log.StreamHandler(os.Stderr, log.LogfmtFormat())))
}

func loadConfig() error {
	viper.SetConfigName("telemintd")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/telemintd")
	viper.SetEnvPrefix("telemintd")
	viper.AutomaticEnv()

	viper.SetDefault("listen-addr", "127.0.0.1:9090")
	viper.SetDefault("db-dir", ".telemintd-db")
	viper.SetDefault("genesis-file", "genesis.json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// defaults and environment only
	}
	return nil
}

func loadGenesis(path string) (*chain.Genesis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := new(chain.Genesis)
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s@%s\n", vm.Name, version.Version)
		os.Exit(0)
	}
	if err := run(); err != nil {
		log.Error("telemintd failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	if err := loadConfig(); err != nil {
		return err
	}

	genesis, err := loadGenesis(viper.GetString("genesis-file"))
	if err != nil {
		return err
	}
	db, err := leveldb.New(viper.GetString("db-dir"), nil, logging.NoLog{})
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := vm.New(db, genesis)
	if err != nil {
		return err
	}
	handlers, err := v.CreateHandlers()
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.Handle(path, h)
	}

	srv := &http.Server{
		Addr:    viper.GetString("listen-addr"),
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("serving", "addr", srv.Addr, "factory", v.Ledger().Factory().Address())
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
