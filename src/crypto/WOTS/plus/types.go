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

// go/src/crypto/WOTS/plus/types.go
package wotsp

import (
	"errors"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/hashchain"
)

// DefaultW is the chain radix of the reference configuration (l = 67).
const DefaultW = 16

var (
	ErrUnsupportedW  = hashchain.ErrUnsupportedW
	ErrEmptyMessage  = errors.New("wots+: empty message")
	ErrNoKeyMaterial = errors.New("wots+: nil key source")
	ErrKeyLength     = errors.New("wots+: key length does not match parameters")
)

// Source supplies independent secret values, typically an HMAC-DRBG.
type Source interface {
	Digests(n int) ([]common.Digest, error)
}

// PrivateKey holds the l chain starts. R and K are public but signing needs
// them, so the private key carries a copy.
type PrivateKey struct {
	Params hashchain.Params
	Key    []common.Digest // l secret chain starts
	R      []common.Digest // w-1 randomization elements
	K      common.Digest   // chain key
}

// PublicKey is pk_0 = (R, K) followed by the l chain endpoints.
type PublicKey struct {
	Params hashchain.Params
	R      []common.Digest // w-1 randomization elements
	K      common.Digest   // chain key
	Key    []common.Digest // l endpoints Chain(sk_i, R, w-1, K)
}

// Signature holds one intermediate chain value per message and checksum digit.
type Signature struct {
	Params hashchain.Params
	Sig    []common.Digest
}
