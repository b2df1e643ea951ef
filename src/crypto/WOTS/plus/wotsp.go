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

// go/src/crypto/WOTS/plus/wotsp.go

// Package wotsp implements the checksummed Winternitz one-time signature
// (W-OTS+). Every chain step XORs a public randomization element into the
// value before applying the keyed function F(k, v) = H(k || v), which lets
// the scheme rest on a one-way (not necessarily collision resistant) F.
//
// A key pair must sign at most one message.
package wotsp

import (
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/hashchain"
)

// NewParams returns the chain lengths for radix w.
func NewParams(w int) (hashchain.Params, error) {
	return hashchain.NewParams(w)
}

// GenerateKeyPair draws l + w - 1 secrets from src (the first l are the
// private key, the remaining w - 1 the randomizers) and then the chain key.
func GenerateKeyPair(params hashchain.Params, src Source) (*PrivateKey, *PublicKey, error) {
	if src == nil {
		return nil, nil, ErrNoKeyMaterial
	}
	sk, err := src.Digests(params.L + params.W - 1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate key fragments: %w", err)
	}
	kk, err := src.Digests(1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate chain key: %w", err)
	}
	priv := sk[:params.L:params.L]
	r := sk[params.L:]
	k := kk[0]

	pub := make([]common.Digest, params.L)
	for i := range priv {
		pub[i] = hashchain.Chain(priv[i], r, params.W-1, k)
	}

	return &PrivateKey{Params: params, Key: priv, R: r, K: k},
		&PublicKey{Params: params, R: r, K: k, Key: pub},
		nil
}

// Sign encodes H(message) as l1 base-w digits plus l2 checksum digits and
// advances chain i by digit i.
func (sk *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}
	p := sk.Params
	if len(sk.Key) != p.L || len(sk.R) != p.W-1 {
		return nil, ErrKeyLength
	}
	msgHash := common.Hash(message)
	digits := p.Digits(msgHash[:])

	sig := make([]common.Digest, p.L)
	for i, d := range digits {
		sig[i] = hashchain.Chain(sk.Key[i], sk.R, d, sk.K)
	}
	return &Signature{Params: p, Sig: sig}, nil
}

// Verify runs every signature element the remaining w-1-d_i steps and
// requires all l endpoints to match the public key. Malformed input yields
// false.
func (pk *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(message) == 0 {
		return false
	}
	p := pk.Params
	if sig.Params != p || len(sig.Sig) != p.L || len(pk.Key) != p.L || len(pk.R) != p.W-1 {
		return false
	}
	msgHash := common.Hash(message)
	digits := p.Digits(msgHash[:])

	for i, d := range digits {
		if hashchain.ChainFrom(sig.Sig[i], pk.R, d, p.W-1, pk.K) != pk.Key[i] {
			return false
		}
	}
	return true
}

// Elements flattens the public key as R, K, endpoints.
func (pk *PublicKey) Elements() []common.Digest {
	out := make([]common.Digest, 0, len(pk.R)+1+len(pk.Key))
	out = append(out, pk.R...)
	out = append(out, pk.K)
	return append(out, pk.Key...)
}

// Hash binds the whole public key, H(R || K || endpoints).
func (pk *PublicKey) Hash() common.Digest {
	return common.HashConcat(pk.Elements()...)
}
