// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "telemint-cli" implements telemintvm client operation interface.
package main

import (
	"fmt"
	"os"

	"github.com/telemintvm/telemintvm/cmd/telemint-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "telemint-cli failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
