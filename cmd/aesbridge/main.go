// main.go: aesbridge command entry point.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/agilira/aesbridge/internal/cli"
)

func main() {
	os.Exit(cli.New().Run(os.Args[1:]))
}
