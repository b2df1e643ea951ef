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

// go/src/crypto/WOTS/key/types.go
package wots

import (
	"errors"

	"github.com/sphinx-core/hashsig/src/common"
)

var (
	ErrUnsupportedW  = errors.New("wots: only w = 8 is supported")
	ErrEmptyMessage  = errors.New("wots: empty message")
	ErrKeyLength     = errors.New("wots: key length does not match parameters")
	ErrNoKeyMaterial = errors.New("wots: nil key source")
	ErrKeyConsumed   = errors.New("wots: current key already signed and could not be replaced")
)

// WOTSParams holds Winternitz parameters
type WOTSParams struct {
	W          int // Winternitz parameter, bits signed per chain
	N          int // Hash output size in bytes
	T          int // Number of hash chains, 256/W
	Iterations int // F applications from private to intermediate value, 2^W - 1
}

// Source supplies independent secret values, typically an HMAC-DRBG.
type Source interface {
	Digests(n int) ([]common.Digest, error)
}

// PrivateKey represents a WOTS private key
type PrivateKey struct {
	Params WOTSParams
	Key    []common.Digest // T secret chain starts
}

// PublicKey represents a WOTS public key
type PublicKey struct {
	Params WOTSParams
	Key    []common.Digest // T values G(F^(2^W-1)(sk_i))
}

// Signature represents a WOTS signature
type Signature struct {
	Params WOTSParams
	Sig    []common.Digest // T chain values
}

// KeyManager hands out a fresh key pair after every signature, so a key is
// never used twice without a Merkle tree.
type KeyManager struct {
	Params    WOTSParams
	CurrentSK *PrivateKey // Current private key
	CurrentPK *PublicKey  // Current public key
	NextPK    *PublicKey  // Public key announced with the last signature
	source    Source
}
