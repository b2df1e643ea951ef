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

// go/src/crypto/hashchain/chain.go
package hashchain

import (
	"github.com/holiman/uint256"
	"github.com/sphinx-core/hashsig/src/common"
)

// F is the keyed one-way function F(k, v) = H(k || v).
func F(k, v common.Digest) common.Digest {
	return common.HashConcat(k, v)
}

// xor combines two digests as 256-bit big-endian integers.
func xor(a, b common.Digest) common.Digest {
	x := new(uint256.Int).SetBytes32(a[:])
	y := new(uint256.Int).SetBytes32(b[:])
	return x.Xor(x, y).Bytes32()
}

// Chain applies steps iterations of x = F(k, x XOR r[y]) for y = 0..steps-1.
// Zero steps returns x unchanged. It panics if steps exceeds len(r).
func Chain(x common.Digest, r []common.Digest, steps int, k common.Digest) common.Digest {
	return ChainFrom(x, r, 0, steps, k)
}

// ChainFrom continues a chain that already stands at position start and
// runs it up to position total, consuming r[start:total]. For every
// 0 <= s <= w-1:
//
//	ChainFrom(Chain(x, r, s, k), r, s, w-1, k) == Chain(x, r, w-1, k)
func ChainFrom(x common.Digest, r []common.Digest, start, total int, k common.Digest) common.Digest {
	for y := start; y < total; y++ {
		x = F(k, xor(x, r[y]))
	}
	return x
}

// Iterate applies the unkeyed H to x n times.
func Iterate(x common.Digest, n int) common.Digest {
	for i := 0; i < n; i++ {
		x = common.HashConcat(x)
	}
	return x
}
