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

// go/src/crypto/lamport/types.go
package lamport

import (
	"errors"

	"github.com/sphinx-core/hashsig/src/common"
)

// NumPairs is the number of secret pairs, one per bit of the message digest.
const NumPairs = common.HashSize * 8

var (
	ErrEmptyMessage  = errors.New("lamport: empty message")
	ErrNoKeyMaterial = errors.New("lamport: nil key source")
	ErrKeyLength     = errors.New("lamport: private key must hold 256 pairs")
)

// Source supplies independent secret values, typically an HMAC-DRBG.
type Source interface {
	Digests(n int) ([]common.Digest, error)
}

// Pair is a (zero, one) tuple: the value revealed, or its hash, for a bit
// of 0 and of 1 respectively.
type Pair [2]common.Digest

// PrivateKey is 256 secret pairs (a_i, b_i).
type PrivateKey struct {
	Key []Pair
}

// PublicKey is 256 pairs (H(a_i), H(b_i)).
type PublicKey struct {
	Key []Pair
}

// Signature reveals one secret per digest bit.
type Signature struct {
	Sig []common.Digest
}
