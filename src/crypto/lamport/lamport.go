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

// go/src/crypto/lamport/lamport.go

// Package lamport implements the Lamport-Diffie one-time signature over the
// 256-bit message digest. A key pair must sign at most one message.
package lamport

import (
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
)

// GenerateKeyPair draws 512 secrets from src, in (a_0, b_0, a_1, b_1, ...)
// order, and hashes each one into the public key.
func GenerateKeyPair(src Source) (*PrivateKey, *PublicKey, error) {
	if src == nil {
		return nil, nil, ErrNoKeyMaterial
	}
	secrets, err := src.Digests(2 * NumPairs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	priv := make([]Pair, NumPairs)
	pub := make([]Pair, NumPairs)
	for i := range priv {
		priv[i] = Pair{secrets[2*i], secrets[2*i+1]}
		pub[i] = Pair{common.HashConcat(priv[i][0]), common.HashConcat(priv[i][1])}
	}
	return &PrivateKey{Key: priv}, &PublicKey{Key: pub}, nil
}

// digestBit returns bit i of digest, least significant bit of each byte first.
func digestBit(digest common.Digest, i int) int {
	return int(digest[i>>3]>>(i&0x07)) & 1
}

// Sign reveals a_i for every 0 bit of H(message) and b_i for every 1 bit.
func (sk *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}
	if len(sk.Key) != NumPairs {
		return nil, ErrKeyLength
	}
	msgHash := common.Hash(message)

	sig := make([]common.Digest, NumPairs)
	for i := range sig {
		sig[i] = sk.Key[i][digestBit(msgHash, i)]
	}
	return &Signature{Sig: sig}, nil
}

// Verify hashes every revealed value and compares it with the public half
// selected by the corresponding digest bit. Malformed input yields false.
func (pk *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(message) == 0 {
		return false
	}
	if len(sig.Sig) != NumPairs || len(pk.Key) != NumPairs {
		return false
	}
	msgHash := common.Hash(message)

	for i := range sig.Sig {
		if common.HashConcat(sig.Sig[i]) != pk.Key[i][digestBit(msgHash, i)] {
			return false
		}
	}
	return true
}

// Elements flattens the public pairs as (H(a_0), H(b_0), H(a_1), ...).
func (pk *PublicKey) Elements() []common.Digest {
	out := make([]common.Digest, 0, 2*len(pk.Key))
	for _, p := range pk.Key {
		out = append(out, p[0], p[1])
	}
	return out
}

// Hash binds the whole public key.
func (pk *PublicKey) Hash() common.Digest {
	return common.HashConcat(pk.Elements()...)
}
