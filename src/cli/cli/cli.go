// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/cli/cli/cli.go

// Package cli implements the hashsig command: key generation, signing,
// verification and the verification service.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sphinx-core/hashsig/src/common"
	database "github.com/sphinx-core/hashsig/src/core/state"
	"github.com/sphinx-core/hashsig/src/crypto/mss"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
	apihttp "github.com/sphinx-core/hashsig/src/http"
	logger "github.com/sphinx-core/hashsig/src/log"
)

const usage = `usage: hashsig <command> [flags]

commands:
  keygen   derive a key store and print its seed and root
  sign     sign a message with the next unused (or a given) OTS index
  verify   check a signature against a root
  serve    run the HTTP verification service
`

// Execute runs the subcommand named by args[0]. Results go to stdout, logs
// to stderr.
func Execute(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("hashsig "+args[0], flag.ContinueOnError)
	fs.StringVar(&cfg.configFile, "config", "", "Path to configuration JSON file")
	fs.StringVar(&cfg.scheme, "scheme", "", "OTS scheme (wots, wots+, lamport)")
	fs.IntVar(&cfg.leaves, "leaves", 0, "Number of OTS key pairs (1..512)")
	fs.IntVar(&cfg.winternitz, "w", 0, "Winternitz parameter for wots+ (2, 4, 16, 256)")
	fs.IntVar(&cfg.workers, "workers", 0, "Key generation workers (0 = all CPUs)")
	fs.StringVar(&cfg.seed, "seed", "", "Base58 seed printed by keygen")
	fs.StringVar(&cfg.passphrase, "passphrase", "", "Derive the seed from a passphrase instead")
	fs.StringVar(&cfg.salt, "salt", "", "Salt for -passphrase")
	fs.IntVar(&cfg.index, "index", -1, "OTS index to sign with (-1 = next unused)")
	fs.StringVar(&cfg.message, "msg", "", "Message to sign or verify")
	fs.StringVar(&cfg.messageFile, "msg-file", "", "Read the message from a file")
	fs.StringVar(&cfg.sigFile, "sig", "", "Signature JSON file to verify")
	fs.StringVar(&cfg.outFile, "out", "", "Write the signature to a file instead of stdout")
	fs.StringVar(&cfg.root, "root", "", "Hex root to verify against")
	fs.StringVar(&cfg.remote, "remote", "", "Verify through a running service at this address")
	fs.StringVar(&cfg.dataDir, "datadir", "", "Directory for the index ledger")
	fs.StringVar(&cfg.httpAddr, "http-addr", "", "Listen address of the verification service")
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	nc, err := loadConfig(cfg)
	if err != nil {
		return err
	}
	if err := logger.Init(nc.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	switch args[0] {
	case "keygen":
		return runKeygen(cfg, nc, stdout)
	case "sign":
		return runSign(cfg, nc, stdout)
	case "verify":
		return runVerify(cfg, stdout)
	case "serve":
		return runServe(cfg, nc)
	}
	fmt.Fprint(stdout, usage)
	return fmt.Errorf("unknown command %q", args[0])
}

// loadConfig applies command-line overrides on top of the config file.
func loadConfig(cfg *Config) (*common.Config, error) {
	nc, err := common.LoadConfig(cfg.configFile)
	if err != nil {
		return nil, err
	}
	if cfg.scheme != "" {
		nc.Scheme = cfg.scheme
	}
	if cfg.leaves != 0 {
		nc.Leaves = cfg.leaves
	}
	if cfg.winternitz != 0 {
		nc.Winternitz = cfg.winternitz
	}
	if cfg.workers != 0 {
		nc.Workers = cfg.workers
	}
	if cfg.dataDir != "" {
		nc.DataDir = cfg.dataDir
	}
	if cfg.httpAddr != "" {
		nc.HTTPAddr = cfg.httpAddr
	}
	if cfg.logLevel != "" {
		nc.LogLevel = cfg.logLevel
	}
	if err := nc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return nc, nil
}

func runKeygen(cfg *Config, nc *common.Config, stdout io.Writer) error {
	seed, err := masterSeed(cfg, true)
	if err != nil {
		return err
	}
	ks, publicSeed, err := openStore(seed, nc, mss.WithObserver(mss.NewLogObserver(logger.L())))
	if err != nil {
		return err
	}

	out := KeygenOutput{
		PublicSeed: common.Bytes2Hex(publicSeed),
		Root:       ks.Root().Hex(),
		Scheme:     ks.Scheme().String(),
		Leaves:     ks.Len(),
		Height:     ks.Height(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if ks.Scheme() == ots.SchemeWOTSPlus {
		out.Winternitz = nc.Winternitz
	}
	// The public record on disk never carries the seed.
	if err := common.WriteJSONToFile(out, nc.GetNodeDataDir(), "keystore-"+ks.Root().Hex()[:16]+".json"); err != nil {
		return err
	}
	if cfg.passphrase == "" {
		out.Seed = encodeSeed(seed)
	}
	return writeJSON(stdout, out)
}

func runSign(cfg *Config, nc *common.Config, stdout io.Writer) error {
	seed, err := masterSeed(cfg, false)
	if err != nil {
		return err
	}
	msg, err := readMessage(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(nc.GetNodeDataDir(), 0755); err != nil {
		return err
	}
	ledger, err := database.Open(nc.GetLevelDBPath())
	if err != nil {
		return err
	}
	defer ledger.Close()

	ks, _, err := openStore(seed, nc,
		mss.WithLedger(ledger),
		mss.WithObserver(mss.NewLogObserver(logger.L())))
	if err != nil {
		return err
	}

	var sig *mss.Signature
	if cfg.index < 0 {
		sig, err = ks.SignNext(msg)
	} else {
		sig, err = ks.Sign(cfg.index, msg)
	}
	if err != nil {
		return err
	}
	logger.L().Info("Signed message",
		zap.String("root", ks.Root().Hex()),
		zap.Int("index", sig.Index),
		zap.Int("remaining", ks.Len()-sig.Index-1))

	if cfg.outFile != "" {
		f, err := os.Create(cfg.outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return writeJSON(f, sig)
	}
	return writeJSON(stdout, sig)
}

func runVerify(cfg *Config, stdout io.Writer) error {
	if cfg.root == "" || cfg.sigFile == "" {
		return errors.New("-root and -sig are required")
	}
	root, err := common.HexToDigest(cfg.root)
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	msg, err := readMessage(cfg)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(cfg.sigFile)
	if err != nil {
		return err
	}
	var sig mss.Signature
	if err := json.Unmarshal(raw, &sig); err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	var valid bool
	if cfg.remote != "" {
		resp, err := apihttp.SubmitVerify(cfg.remote, apihttp.VerifyRequest{
			Root:      root,
			Message:   common.Bytes2Hex(msg),
			Encoding:  "hex",
			Signature: &sig,
		})
		if err != nil {
			return err
		}
		valid = resp.Valid
	} else {
		valid = mss.Verify(root, msg, &sig)
	}

	if !valid {
		fmt.Fprintln(stdout, "invalid")
		return ErrInvalidSignature
	}
	fmt.Fprintln(stdout, "valid")
	return nil
}

func runServe(cfg *Config, nc *common.Config) error {
	log := logger.L()
	metrics := mss.NewMetrics(prometheus.DefaultRegisterer)
	obs := mss.MultiObserver{metrics, mss.NewLogObserver(log)}

	var store *mss.KeyStore
	if cfg.seed != "" || cfg.passphrase != "" {
		seed, err := masterSeed(cfg, false)
		if err != nil {
			return err
		}
		if store, _, err = openStore(seed, nc, mss.WithObserver(obs)); err != nil {
			return err
		}
	}

	verifier, err := mss.NewVerifier(nc.CacheSize, obs)
	if err != nil {
		return err
	}
	srv := apihttp.NewServer(nc.HTTPAddr, verifier, store, log, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case s := <-sigCh:
		log.Info("Shutting down verification service", zap.Stringer("signal", s))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
