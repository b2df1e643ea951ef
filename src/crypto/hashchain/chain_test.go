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

package hashchain

import (
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestOf(s string) common.Digest {
	return common.Hash([]byte(s))
}

func randomizers(n int) []common.Digest {
	r := make([]common.Digest, n)
	for i := range r {
		r[i] = common.Hash([]byte{'r', byte(i)})
	}
	return r
}

func TestNewParams(t *testing.T) {
	tests := []struct {
		w         int
		l1, l2, l  int
	}{
		{2, 256, 9, 265},
		{4, 128, 5, 133},
		{16, 64, 3, 67},
		{256, 32, 2, 34},
	}
	for _, tt := range tests {
		p, err := NewParams(tt.w)
		require.NoError(t, err, "w=%d", tt.w)
		assert.Equal(t, tt.l1, p.L1, "l1 for w=%d", tt.w)
		assert.Equal(t, tt.l2, p.L2, "l2 for w=%d", tt.w)
		assert.Equal(t, tt.l, p.L, "l for w=%d", tt.w)
	}
}

func TestNewParamsRejects(t *testing.T) {
	for _, w := range []int{0, 1, 3, 8, 32, 512} {
		_, err := NewParams(w)
		assert.True(t, errors.Is(err, ErrUnsupportedW), "w=%d", w)
	}
}

func TestDigitsHexNibbles(t *testing.T) {
	p, err := NewParams(16)
	require.NoError(t, err)

	digest := make([]byte, 32)
	digest[0] = 0xa5
	digest[31] = 0x0f
	d := p.Digits(digest)
	require.Len(t, d, 67)
	assert.Equal(t, 0xa, d[0])
	assert.Equal(t, 0x5, d[1])
	assert.Equal(t, 0x0, d[62])
	assert.Equal(t, 0xf, d[63])

	checksum := 0
	for _, v := range d[:64] {
		checksum += 15 - v
	}
	assert.Equal(t, checksum, d[64]<<8|d[65]<<4|d[66])
}

func TestChecksumDigitsZeroPadded(t *testing.T) {
	p, err := NewParams(16)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0}, p.ChecksumDigits(0))
	assert.Equal(t, []int{0, 0, 7}, p.ChecksumDigits(7))
	assert.Equal(t, []int{0, 1, 0}, p.ChecksumDigits(16))
	assert.Equal(t, []int{3, 12, 0}, p.ChecksumDigits(p.MaxChecksum()))
}

func TestChainZeroStepsIsIdentity(t *testing.T) {
	x := digestOf("x")
	assert.Equal(t, x, Chain(x, randomizers(15), 0, digestOf("k")))
}

func TestChainSingleStep(t *testing.T) {
	x := digestOf("x")
	k := digestOf("k")
	r := randomizers(1)

	var mixed [32]byte
	for i := range mixed {
		mixed[i] = x[i] ^ r[0][i]
	}
	want := sha256.Sum256(append(k[:], mixed[:]...))
	assert.Equal(t, common.Digest(want), Chain(x, r, 1, k))
}

func TestChainFromMidpoint(t *testing.T) {
	const w = 16
	r := randomizers(w - 1)
	k := digestOf("key")
	for _, seed := range []string{"a", "b", "c"} {
		x := digestOf(seed)
		end := Chain(x, r, w-1, k)
		for s := 0; s <= w-1; s++ {
			mid := Chain(x, r, s, k)
			assert.Equal(t, end, ChainFrom(mid, r, s, w-1, k), "seed %q s=%d", seed, s)
		}
	}
}

func TestChainDependsOnKey(t *testing.T) {
	x := digestOf("x")
	r := randomizers(15)
	assert.NotEqual(t, Chain(x, r, 15, digestOf("k1")), Chain(x, r, 15, digestOf("k2")))
}

func TestIterate(t *testing.T) {
	x := digestOf("x")
	assert.Equal(t, x, Iterate(x, 0))
	want := sha256.Sum256(x[:])
	want = sha256.Sum256(want[:])
	assert.Equal(t, common.Digest(want), Iterate(x, 2))
}
