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

// go/src/crypto/mss/types.go
package mss

import (
	"errors"
	"sync"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/merkle"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
)

var (
	ErrIndexOutOfRange = errors.New("mss: OTS index out of range")
	ErrEmptyMessage    = errors.New("mss: empty message")
	ErrIndexUsed       = errors.New("mss: OTS index already used")
	ErrExhausted       = errors.New("mss: every OTS index has been used")
	ErrInvalidConfig   = errors.New("mss: invalid key store configuration")
)

// Config selects the OTS family and size of a key store.
type Config struct {
	Scheme  ots.Scheme // OTS family of every leaf
	Leaves  int        // number of OTS key pairs, 1..512
	W       int        // Winternitz+ radix, ignored by the other schemes
	Workers int        // key generation goroutines, 0 means GOMAXPROCS
}

// Entry is the read-only view of one leaf: its public key plus the root and
// path it shares through the store.
type Entry struct {
	Index  int
	Root   common.Digest
	Path   merkle.AuthPath
	Public ots.PublicKey
}

// Signature carries everything a verifier holding only the root needs.
type Signature struct {
	Scheme    ots.Scheme      `json:"scheme"`
	W         int             `json:"w,omitempty"`
	Index     int             `json:"index"`
	OTS       ots.Signature   `json:"ots"`
	PublicKey []common.Digest `json:"public_key"`
	Path      merkle.AuthPath `json:"path"`
}

// Ledger remembers which OTS indices of a root have signed. It stores
// indices only, never key material.
type Ledger interface {
	IsUsed(root common.Digest, index int) (bool, error)
	MarkUsed(root common.Digest, index int) error
}

// KeyStore owns the OTS key pairs of one tree and the tree itself. Leaves
// refer to the shared root and their path by index.
type KeyStore struct {
	mu     sync.Mutex
	cfg    Config
	pairs  []ots.KeyPair
	leaves []common.Digest
	tree   *merkle.Tree
	ledger Ledger
	obs    Observer
}

// Option configures a KeyStore.
type Option func(*KeyStore)

// WithLedger replaces the in-memory ledger.
func WithLedger(l Ledger) Option {
	return func(ks *KeyStore) {
		if l != nil {
			ks.ledger = l
		}
	}
}

// WithObserver attaches an observer to key generation and signing.
func WithObserver(o Observer) Option {
	return func(ks *KeyStore) {
		if o != nil {
			ks.obs = o
		}
	}
}
