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

// go/src/crypto/mss/keystore.go

// Package mss composes one-time signature key pairs under a Merkle tree into
// a many-time signature scheme. Each OTS index signs at most one message;
// the key store enforces this through its Ledger.
package mss

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sphinx-core/hashsig/src/common"
	wotsp "github.com/sphinx-core/hashsig/src/crypto/WOTS/plus"
	"github.com/sphinx-core/hashsig/src/crypto/merkle"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
)

// withDefaults fills unset fields and rejects impossible ones.
func (c Config) withDefaults() (Config, error) {
	switch c.Scheme {
	case ots.SchemeWOTS, ots.SchemeWOTSPlus, ots.SchemeLamport:
	default:
		return c, fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ots.ErrUnknownScheme, uint8(c.Scheme))
	}
	if _, err := merkle.NumBranches(c.Leaves); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Scheme == ots.SchemeWOTSPlus && c.W == 0 {
		c.W = wotsp.DefaultW
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Workers > c.Leaves {
		c.Workers = c.Leaves
	}
	return c, nil
}

// NewKeyStore derives cfg.Leaves OTS key pairs from seed, leaf i from its own
// HMAC-DRBG personalized with i, and builds the tree over their public key
// hashes.
func NewKeyStore(seed []byte, cfg Config, opts ...Option) (*KeyStore, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	ks := &KeyStore{
		cfg:    cfg,
		pairs:  make([]ots.KeyPair, cfg.Leaves),
		leaves: make([]common.Digest, cfg.Leaves),
		ledger: NewMemoryLedger(),
		obs:    NopObserver{},
	}
	for _, opt := range opts {
		opt(ks)
	}

	ks.obs.KeyGenStarted(cfg.Scheme, cfg.Leaves)
	start := time.Now()
	if err := ks.generate(seed); err != nil {
		return nil, err
	}
	ks.obs.KeyGenDone(cfg.Scheme, cfg.Leaves, time.Since(start))

	start = time.Now()
	tree, err := merkle.New(ks.leaves)
	if err != nil {
		reportTreeError(ks.obs, err)
		return nil, fmt.Errorf("failed to build merkle tree: %w", err)
	}
	ks.tree = tree
	ks.obs.TreeBuilt(tree.Root(), tree.Height(), time.Since(start))
	return ks, nil
}

// generate fills pairs and leaves with cfg.Workers goroutines. Leaves are
// independent, so the result does not depend on scheduling.
func (ks *KeyStore) generate(seed []byte) error {
	jobs := make(chan int)
	errs := make(chan error, ks.cfg.Workers)
	done := make(chan struct{})
	var wg sync.WaitGroup

	for w := 0; w < ks.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				kp, err := ots.Generate(ks.cfg.Scheme, ks.cfg.W, seed, uint32(i))
				if err != nil {
					errs <- fmt.Errorf("failed to generate OTS key %d: %w", i, err)
					return
				}
				ks.pairs[i] = kp
				ks.leaves[i] = kp.Public().Hash()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < ks.cfg.Leaves; i++ {
			select {
			case jobs <- i:
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(errs)
	}()

	var first error
	for err := range errs {
		if first == nil {
			first = err
			close(done)
		}
	}
	return first
}

// Root returns the tree root, the long-term public key.
func (ks *KeyStore) Root() common.Digest {
	return ks.tree.Root()
}

// Len is the number of OTS indices.
func (ks *KeyStore) Len() int {
	return len(ks.pairs)
}

func (ks *KeyStore) Scheme() ots.Scheme {
	return ks.cfg.Scheme
}

// Height is the tree layer count, which is also every path length.
func (ks *KeyStore) Height() int {
	return ks.tree.Height()
}

// Tree exposes the underlying tree.
func (ks *KeyStore) Tree() *merkle.Tree {
	return ks.tree
}

func (ks *KeyStore) checkIndex(index int) error {
	if index < 0 || index >= len(ks.pairs) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(ks.pairs))
	}
	return nil
}

// Entry returns the public view of leaf index.
func (ks *KeyStore) Entry(index int) (Entry, error) {
	if err := ks.checkIndex(index); err != nil {
		return Entry{}, err
	}
	path, err := ks.tree.Path(index)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Index:  index,
		Root:   ks.tree.Root(),
		Path:   path,
		Public: ks.pairs[index].Public(),
	}, nil
}

// Sign signs message with OTS index and records the index as used. An index
// the ledger already holds is refused.
func (ks *KeyStore) Sign(index int, message []byte) (*Signature, error) {
	if err := ks.checkIndex(index); err != nil {
		return nil, err
	}
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	root := ks.tree.Root()
	used, err := ks.ledger.IsUsed(root, index)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if used {
		return nil, fmt.Errorf("%w: %d", ErrIndexUsed, index)
	}

	kp := ks.pairs[index]
	otsSig, err := kp.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign with OTS key %d: %w", index, err)
	}
	path, err := ks.tree.Path(index)
	if err != nil {
		return nil, err
	}
	if err := ks.ledger.MarkUsed(root, index); err != nil {
		return nil, fmt.Errorf("failed to record OTS index %d: %w", index, err)
	}
	ks.obs.Signed(root, index)

	pub := kp.Public()
	return &Signature{
		Scheme:    ks.cfg.Scheme,
		W:         pub.W(),
		Index:     index,
		OTS:       otsSig,
		PublicKey: pub.Elements(),
		Path:      path,
	}, nil
}

// NextUnused returns the lowest index the ledger has not seen.
func (ks *KeyStore) NextUnused() (int, error) {
	root := ks.tree.Root()
	for i := range ks.pairs {
		used, err := ks.ledger.IsUsed(root, i)
		if err != nil {
			return 0, fmt.Errorf("failed to read ledger: %w", err)
		}
		if !used {
			return i, nil
		}
	}
	return 0, ErrExhausted
}

// SignNext signs with NextUnused.
func (ks *KeyStore) SignNext(message []byte) (*Signature, error) {
	index, err := ks.NextUnused()
	if err != nil {
		return nil, err
	}
	return ks.Sign(index, message)
}

// VerifyOTS checks an OTS signature against the store's own key at index.
func (ks *KeyStore) VerifyOTS(index int, message []byte, sig ots.Signature) bool {
	if ks.checkIndex(index) != nil {
		return false
	}
	return ks.pairs[index].Public().Verify(message, sig)
}
