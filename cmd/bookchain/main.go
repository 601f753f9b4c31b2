/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Command bookchain is a command line client for the Bookchain book marketplace.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/zhang829-666/BookchainHF/cmd/bookchain/internal/cli"
)

const version = "0.1.0"

func main() {
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
