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

// go/src/crypto/WOTS/key/wots.go
package wots

import (
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/hashchain"
)

// GenerateKeyPair draws T secrets from src. Each secret is hashed
// 2^W - 1 times (F) and then once more (G) to form the public value.
func GenerateKeyPair(params WOTSParams, src Source) (*PrivateKey, *PublicKey, error) {
	if src == nil {
		return nil, nil, ErrNoKeyMaterial
	}
	if params.W != SupportedW {
		return nil, nil, fmt.Errorf("%w: got %d", ErrUnsupportedW, params.W)
	}
	privKey, err := src.Digests(params.T)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	pubKey := make([]common.Digest, params.T)
	for i, sk := range privKey {
		// G is a separate final hash so that F and G could differ.
		pubKey[i] = common.HashConcat(hashchain.Iterate(sk, params.Iterations))
	}

	return &PrivateKey{Params: params, Key: privKey},
		&PublicKey{Params: params, Key: pubKey},
		nil
}

// Sign hashes message and, for every digest byte b_i, reveals
// F^(255-b_i)(sk_i).
func (sk *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}
	if len(sk.Key) != sk.Params.T {
		return nil, ErrKeyLength
	}
	msgHash := common.Hash(message)

	sig := make([]common.Digest, sk.Params.T)
	for i := range sig {
		sig[i] = hashchain.Iterate(sk.Key[i], sk.Params.Iterations-int(msgHash[i]))
	}
	return &Signature{Params: sk.Params, Sig: sig}, nil
}

// Verify completes every chain with the remaining b_i applications of F,
// applies G and compares with the public key. Malformed input yields false.
func (pk *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(message) == 0 {
		return false
	}
	if sig.Params != pk.Params || len(sig.Sig) != pk.Params.T || len(pk.Key) != pk.Params.T {
		return false
	}
	msgHash := common.Hash(message)

	for i := range sig.Sig {
		v := common.HashConcat(hashchain.Iterate(sig.Sig[i], int(msgHash[i])))
		if v != pk.Key[i] {
			return false
		}
	}
	return true
}

// Hash binds the whole public key: H(pk_0 || ... || pk_{T-1}).
func (pk *PublicKey) Hash() common.Digest {
	return common.HashConcat(pk.Key...)
}
