// terminal.go: Interactive passphrase prompt.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var errNoTerminal = errors.New("no terminal available for passphrase prompt (use --passphrase or $" + PassphraseEnvVar + ")")

// readTerminalPassword prompts on stderr and reads a line from the
// controlling terminal without echo. Stdin may be carrying the data, so
// /dev/tty is tried when stdin is not a terminal.
func readTerminalPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return nil, errNoTerminal
		}
		defer tty.Close()
		fd = int(tty.Fd())
		if !term.IsTerminal(fd) {
			return nil, errNoTerminal
		}
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return passphrase, nil
}
