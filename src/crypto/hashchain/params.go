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

// go/src/crypto/hashchain/params.go
package hashchain

import (
	"errors"
	"fmt"
	"math/bits"
)

// MessageBits is the bit length m of the signed message digest.
const MessageBits = 256

// ErrUnsupportedW is returned for a chain radix that is not a power of two
// whose bit width divides a byte.
var ErrUnsupportedW = errors.New("hashchain: w must be one of 2, 4, 16, 256")

// Params holds the Winternitz lengths derived from the radix w.
type Params struct {
	W    int // chain radix
	LogW int // log2(w), bits per digit
	L1   int // message digits
	L2   int // checksum digits
	L    int // L1 + L2
}

// NewParams derives l1 = ceil(m / log2(w)) and
// l2 = floor(log2(l1*(w-1)) / log2(w)) + 1 for m = 256.
func NewParams(w int) (Params, error) {
	// Closed form used by the reference configuration.
	if w == 16 {
		return Params{W: 16, LogW: 4, L1: 64, L2: 3, L: 67}, nil
	}
	if w < 2 || w > 256 || bits.OnesCount(uint(w)) != 1 {
		return Params{}, fmt.Errorf("%w: got %d", ErrUnsupportedW, w)
	}
	logW := bits.TrailingZeros(uint(w))
	if 8%logW != 0 {
		return Params{}, fmt.Errorf("%w: got %d", ErrUnsupportedW, w)
	}
	l1 := (MessageBits + logW - 1) / logW
	// floor(log_w(x)) + 1 is the number of base-w digits of x.
	l2 := 0
	for x := l1 * (w - 1); x > 0; x >>= logW {
		l2++
	}
	return Params{W: w, LogW: logW, L1: l1, L2: l2, L: l1 + l2}, nil
}

// MaxChecksum is the checksum of an all-zero message digest, l1*(w-1).
func (p Params) MaxChecksum() int {
	return p.L1 * (p.W - 1)
}

// Digits splits digest into L1 big-endian base-w digits followed by the L2
// checksum digits encoding sum(w-1-d_i). The checksum is always left-padded
// with zero digits to exactly L2 positions.
func (p Params) Digits(digest []byte) []int {
	digits := make([]int, 0, p.L)
	mask := p.W - 1
	perByte := 8 / p.LogW
	for i := 0; i < p.L1; i++ {
		b := digest[i/perByte]
		shift := 8 - p.LogW*(i%perByte+1)
		digits = append(digits, int(b>>uint(shift))&mask)
	}

	checksum := 0
	for _, d := range digits {
		checksum += p.W - 1 - d
	}
	return append(digits, p.ChecksumDigits(checksum)...)
}

// ChecksumDigits encodes c as exactly L2 base-w digits, most significant first.
func (p Params) ChecksumDigits(c int) []int {
	out := make([]int, p.L2)
	for i := p.L2 - 1; i >= 0; i-- {
		out[i] = c & (p.W - 1)
		c >>= p.LogW
	}
	return out
}
