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

package wots

import (
	"errors"
	"testing"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/drbg"
	"github.com/sphinx-core/hashsig/src/crypto/hashchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T, tag byte) *drbg.HMACDRBG {
	t.Helper()
	seed := make([]byte, drbg.SeedSize)
	seed[0] = tag
	d, err := drbg.New(seed, []byte("wots-test"))
	require.NoError(t, err)
	return d
}

func newKeyPair(t *testing.T, tag byte) (*PrivateKey, *PublicKey) {
	t.Helper()
	sk, pk, err := GenerateKeyPair(DefaultParams(), newSource(t, tag))
	require.NoError(t, err)
	return sk, pk
}

func TestParams(t *testing.T) {
	p, err := NewWOTSParams(8)
	require.NoError(t, err)
	assert.Equal(t, 32, p.T)
	assert.Equal(t, 255, p.Iterations)
	assert.Equal(t, 32, p.N)

	for _, w := range []int{4, 16} {
		_, err := NewWOTSParams(w)
		assert.True(t, errors.Is(err, ErrUnsupportedW), "w=%d", w)
	}
}

func TestPublicKeyIsGOfFullChain(t *testing.T) {
	sk, pk := newKeyPair(t, 1)
	require.Len(t, pk.Key, 32)
	for i := range sk.Key {
		want := common.HashConcat(hashchain.Iterate(sk.Key[i], 255))
		assert.Equal(t, want, pk.Key[i], "chain %d", i)
	}
}

func TestSignVerify(t *testing.T) {
	sk, pk := newKeyPair(t, 1)
	msg := []byte("Hello, WOTS!")

	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig.Sig, 32)
	assert.True(t, pk.Verify(msg, sig))

	digest := common.Hash(msg)
	for i := range sig.Sig {
		want := hashchain.Iterate(sk.Key[i], 255-int(digest[i]))
		assert.Equal(t, want, sig.Sig[i], "chain %d", i)
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	sk, pk := newKeyPair(t, 2)
	msg := []byte("Hello, WOTS!")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)

	for i := 0; i < len(msg)*8; i += 7 {
		tampered := append([]byte(nil), msg...)
		tampered[i/8] ^= 1 << (i % 8)
		assert.False(t, pk.Verify(tampered, sig), "bit %d", i)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	sk, pk := newKeyPair(t, 3)
	msg := []byte("message")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)

	for i := range sig.Sig {
		bad := &Signature{Params: sig.Params, Sig: append([]common.Digest(nil), sig.Sig...)}
		bad.Sig[i][i%common.HashSize] ^= 0xff
		assert.False(t, pk.Verify(msg, bad), "element %d", i)
	}
}

func TestVerifyRejectsOtherKey(t *testing.T) {
	sk, _ := newKeyPair(t, 4)
	_, other := newKeyPair(t, 5)
	sig, err := sk.Sign([]byte("m"))
	require.NoError(t, err)
	assert.False(t, other.Verify([]byte("m"), sig))
}

func TestVerifyMalformed(t *testing.T) {
	sk, pk := newKeyPair(t, 6)
	sig, err := sk.Sign([]byte("m"))
	require.NoError(t, err)

	assert.False(t, pk.Verify([]byte("m"), nil))
	assert.False(t, pk.Verify(nil, sig))
	short := &Signature{Params: sig.Params, Sig: sig.Sig[:10]}
	assert.False(t, pk.Verify([]byte("m"), short))
}

func TestSignEmptyMessage(t *testing.T) {
	sk, _ := newKeyPair(t, 7)
	_, err := sk.Sign(nil)
	assert.True(t, errors.Is(err, ErrEmptyMessage))
}

func TestGenerateKeyPairDeterministic(t *testing.T) {
	_, a := newKeyPair(t, 8)
	_, b := newKeyPair(t, 8)
	assert.Equal(t, a.Hash(), b.Hash())
	_, c := newKeyPair(t, 9)
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestGenerateKeyPairNilSource(t *testing.T) {
	_, _, err := GenerateKeyPair(DefaultParams(), nil)
	assert.True(t, errors.Is(err, ErrNoKeyMaterial))
}

func TestKeyManagerRotates(t *testing.T) {
	km, err := NewKeyManager(newSource(t, 10))
	require.NoError(t, err)

	first := []byte("first")
	sig, currentPK, nextPK, err := km.SignAndRotate(first)
	require.NoError(t, err)
	assert.True(t, currentPK.Verify(first, sig))
	assert.NotEqual(t, currentPK.Hash(), nextPK.Hash())
	assert.Same(t, nextPK, km.CurrentPK)

	second := []byte("second")
	sig2, pk2, _, err := km.SignAndRotate(second)
	require.NoError(t, err)
	assert.Same(t, nextPK, pk2)
	assert.True(t, pk2.Verify(second, sig2))
	assert.False(t, currentPK.Verify(second, sig2))
}
