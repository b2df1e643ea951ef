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

// go/src/cli/cli/helper.go
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/argon2"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/drbg"
	"github.com/sphinx-core/hashsig/src/crypto/mss"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
)

// Argon2id parameters for passphrase seeds (memory in KiB).
const (
	argonTime    = 2
	argonMemory  = 64 * 1024
	argonThreads = 1
	defaultSalt  = "hashsig-mss-seed"
)

var errNoSeed = errors.New("either -seed or -passphrase is required")

// passphraseSeed stretches a passphrase into a DRBG seed.
func passphraseSeed(passphrase, salt string) []byte {
	if salt == "" {
		salt = defaultSalt
	}
	return argon2.IDKey([]byte(passphrase), []byte(salt), argonTime, argonMemory, argonThreads, drbg.SeedSize)
}

// decodeSeed accepts a base58 seed as printed by keygen.
func decodeSeed(s string) ([]byte, error) {
	seed := base58.Decode(s)
	if len(seed) < drbg.SeedSize {
		return nil, fmt.Errorf("seed must decode to at least %d bytes, got %d", drbg.SeedSize, len(seed))
	}
	return seed, nil
}

func encodeSeed(seed []byte) string {
	return base58.Encode(seed)
}

// masterSeed resolves the seed flags. fresh allows drawing a new random seed
// when neither flag is set.
func masterSeed(cfg *Config, fresh bool) ([]byte, error) {
	switch {
	case cfg.passphrase != "":
		return passphraseSeed(cfg.passphrase, cfg.salt), nil
	case cfg.seed != "":
		return decodeSeed(cfg.seed)
	case fresh:
		return drbg.NewSeed()
	}
	return nil, errNoSeed
}

// openStore splits the master seed into its public and private halves and
// derives the key store from the private one.
func openStore(seed []byte, nc *common.Config, opts ...mss.Option) (*mss.KeyStore, []byte, error) {
	_, publicSeed, privateSeed, err := drbg.NewKeys(seed, nc.KeyGapIter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive seeds: %w", err)
	}
	scheme, err := ots.ParseScheme(nc.Scheme)
	if err != nil {
		return nil, nil, err
	}
	ks, err := mss.NewKeyStore(privateSeed, mss.Config{
		Scheme:  scheme,
		Leaves:  nc.Leaves,
		W:       nc.Winternitz,
		Workers: nc.Workers,
	}, opts...)
	if err != nil {
		return nil, nil, err
	}
	return ks, publicSeed, nil
}

// readMessage returns -msg, or the contents of -msg-file.
func readMessage(cfg *Config) ([]byte, error) {
	if cfg.messageFile != "" {
		return os.ReadFile(cfg.messageFile)
	}
	if cfg.message == "" {
		return nil, errors.New("-msg or -msg-file is required")
	}
	return []byte(cfg.message), nil
}
