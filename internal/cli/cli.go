// cli.go: Command line front end for the aesbridge schemes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	goerrors "github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/agilira/aesbridge"
	"github.com/agilira/aesbridge/internal/logging"
)

const (
	// Version of the aesbridge command.
	Version = "1.0.0"

	// PassphraseEnvVar is read when --passphrase is not given.
	PassphraseEnvVar = "AESBRIDGE_PASSPHRASE"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Error codes for command failures
const (
	ErrCodeUsage      = "CLI_USAGE"
	ErrCodePassphrase = "CLI_PASSPHRASE"
	ErrCodeInput      = "CLI_INPUT"
	ErrCodeOutput     = "CLI_OUTPUT"
)

// App holds the process handles the command works against. Tests replace
// them; main uses New.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv reads configuration from the environment.
	LookupEnv func(key string) (string, bool)

	// ReadPassword prompts for a passphrase without echo. It returns an
	// error when no terminal is available.
	ReadPassword func(prompt string) ([]byte, error)
}

// New returns an App bound to the real process.
func New() *App {
	return &App{
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		LookupEnv:    os.LookupEnv,
		ReadPassword: readTerminalPassword,
	}
}

// options are the flags shared by encrypt and decrypt.
type options struct {
	mode       string
	data       string
	passphrase string
	b64        bool
	verbose    bool

	dataSet       bool
	passphraseSet bool
}

// Run executes one command and returns the process exit code.
func (a *App) Run(args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "encrypt", "decrypt":
		return a.runOperation(args[0], args[1:])
	case "version", "--version":
		fmt.Fprintf(a.Stdout, "aesbridge version %s\n", Version)
		return ExitOK
	case "help", "--help", "-h":
		a.printUsage()
		return ExitOK
	default:
		fmt.Fprintf(a.Stderr, "Error: unknown command %q\n", args[0])
		a.printUsage()
		return ExitUsage
	}
}

func (a *App) parseFlags(command string, args []string) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	fs.StringVarP(&opts.mode, "mode", "m", "", "Encryption mode: cbc, gcm, or legacy")
	fs.StringVarP(&opts.data, "data", "d", "", "Input data (read from stdin when omitted)")
	fs.StringVarP(&opts.passphrase, "passphrase", "p", "", "Passphrase for key derivation (default $"+PassphraseEnvVar+" or prompt)")
	fs.BoolVar(&opts.b64, "b64", false, "Base64 plaintext: decode input on encrypt, encode output on decrypt")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, goerrors.New(ErrCodeUsage, fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}
	if opts.mode == "" {
		return nil, goerrors.New(ErrCodeUsage, "--mode is required (cbc, gcm, or legacy)")
	}
	opts.dataSet = fs.Changed("data")
	opts.passphraseSet = fs.Changed("passphrase")
	return opts, nil
}

func (a *App) runOperation(command string, args []string) int {
	opts, err := a.parseFlags(command, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	scheme, err := aesbridge.ParseScheme(opts.mode)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	log := logging.New(a.Stderr, opts.verbose)
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("command", command), zap.Stringer("scheme", scheme))

	// Cached clock for the timestamp only; its tick exceeds a legacy decrypt.
	log = log.With(zap.Time("started_at", timecache.CachedTime().UTC()))
	start := time.Now()
	out, err := a.execute(command, scheme, opts)
	elapsed := time.Since(start)
	if err != nil {
		log.Debug("operation failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitError
	}

	log.Debug("operation complete", zap.Int("output_len", len(out)), zap.Duration("elapsed", elapsed))
	if _, err := fmt.Fprintln(a.Stdout, out); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", goerrors.Wrap(err, ErrCodeOutput, "failed to write output"))
		return ExitError
	}
	return ExitOK
}

func (a *App) execute(command string, scheme aesbridge.Scheme, opts *options) (string, error) {
	input, err := a.readInput(opts)
	if err != nil {
		return "", err
	}

	passphrase, err := a.resolvePassphrase(opts, command == "encrypt")
	if err != nil {
		return "", err
	}
	defer aesbridge.Zeroize(passphrase)

	if command == "encrypt" {
		plaintext := []byte(input)
		if opts.b64 {
			if plaintext, err = aesbridge.Base64Decode(input); err != nil {
				return "", err
			}
		}
		defer aesbridge.Zeroize(plaintext)
		return scheme.Encrypt(plaintext, passphrase)
	}

	plaintext, err := scheme.Decrypt(input, passphrase)
	if err != nil {
		return "", err
	}
	defer aesbridge.Zeroize(plaintext)
	if opts.b64 {
		return aesbridge.Base64Encode(plaintext), nil
	}
	if !utf8.Valid(plaintext) {
		return "", goerrors.New(ErrCodeOutput, "decrypted data is not valid UTF-8 (use --b64)")
	}
	return string(plaintext), nil
}

// readInput returns --data, or stdin without its final line break.
func (a *App) readInput(opts *options) (string, error) {
	if opts.dataSet {
		return opts.data, nil
	}
	raw, err := io.ReadAll(a.Stdin)
	if err != nil {
		return "", goerrors.Wrap(err, ErrCodeInput, "failed to read stdin")
	}
	raw = bytes.TrimSuffix(raw, []byte("\n"))
	raw = bytes.TrimSuffix(raw, []byte("\r"))
	return string(raw), nil
}

// resolvePassphrase uses --passphrase, then the environment, then an
// interactive prompt. New passphrases are asked for twice.
func (a *App) resolvePassphrase(opts *options, confirm bool) ([]byte, error) {
	if opts.passphraseSet {
		return []byte(opts.passphrase), nil
	}
	if a.LookupEnv != nil {
		if v, ok := a.LookupEnv(PassphraseEnvVar); ok {
			return []byte(v), nil
		}
	}
	if a.ReadPassword == nil {
		return nil, goerrors.New(ErrCodePassphrase, "no passphrase given (use --passphrase or $"+PassphraseEnvVar+")")
	}

	passphrase, err := a.ReadPassword("Passphrase: ")
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodePassphrase, "failed to read passphrase")
	}
	if !confirm {
		return passphrase, nil
	}

	again, err := a.ReadPassword("Confirm passphrase: ")
	if err != nil {
		aesbridge.Zeroize(passphrase)
		return nil, goerrors.Wrap(err, ErrCodePassphrase, "failed to read passphrase")
	}
	defer aesbridge.Zeroize(again)
	if !bytes.Equal(passphrase, again) {
		aesbridge.Zeroize(passphrase)
		return nil, goerrors.New(ErrCodePassphrase, "passphrases do not match")
	}
	return passphrase, nil
}

func (a *App) printUsage() {
	usage := `aesbridge - passphrase based AES encryption compatible with AesBridge

USAGE:
    aesbridge <command> [options]

COMMANDS:
    encrypt     Encrypt data, print the base64 blob
    decrypt     Decrypt a base64 blob, print the plaintext
    version     Show version information
    help        Show this help message

OPTIONS:
    --mode, -m MODE         cbc, gcm, or legacy (required)
    --data, -d DATA         Input data; read from stdin when omitted
    --passphrase, -p PASS   Passphrase (default $` + PassphraseEnvVar + ` or prompt)
    --b64                   Encrypt: input is base64. Decrypt: print base64
    --verbose, -v           Log diagnostics to stderr

EXAMPLES:
    aesbridge encrypt --mode gcm --data "hello" --passphrase secret
    aesbridge decrypt --mode gcm --data "<blob>" --passphrase secret
    cat file.bin | base64 | aesbridge encrypt --mode cbc --b64 > file.enc
`
	fmt.Fprint(a.Stderr, strings.TrimLeft(usage, "\n"))
}
