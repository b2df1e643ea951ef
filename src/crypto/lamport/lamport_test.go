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

package lamport

import (
	"errors"
	"testing"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/drbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyPair(t *testing.T, tag byte) (*PrivateKey, *PublicKey) {
	t.Helper()
	seed := make([]byte, drbg.SeedSize)
	seed[47] = tag
	src, err := drbg.New(seed, nil)
	require.NoError(t, err)
	sk, pk, err := GenerateKeyPair(src)
	require.NoError(t, err)
	return sk, pk
}

func TestDigestBitOrder(t *testing.T) {
	var d common.Digest
	d[0] = 0x01
	d[1] = 0x80
	assert.Equal(t, 1, digestBit(d, 0))
	assert.Equal(t, 0, digestBit(d, 1))
	assert.Equal(t, 0, digestBit(d, 8))
	assert.Equal(t, 1, digestBit(d, 15))
}

func TestSignVerify(t *testing.T) {
	sk, pk := newKeyPair(t, 1)
	msg := []byte("lamport")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig.Sig, 256)
	assert.True(t, pk.Verify(msg, sig))

	digest := common.Hash(msg)
	for i, v := range sig.Sig {
		assert.Equal(t, sk.Key[i][digestBit(digest, i)], v, "bit %d", i)
	}
}

func TestVerifyRejectsBitFlippedMessage(t *testing.T) {
	sk, pk := newKeyPair(t, 2)
	msg := []byte("lamport message")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)

	for i := 0; i < len(msg)*8; i++ {
		tampered := append([]byte(nil), msg...)
		tampered[i/8] ^= 1 << (i % 8)
		assert.False(t, pk.Verify(tampered, sig), "bit %d", i)
	}
}

func TestVerifyRejectsTamperedElement(t *testing.T) {
	sk, pk := newKeyPair(t, 3)
	msg := []byte("m")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)

	for i := 0; i < NumPairs; i += 17 {
		bad := &Signature{Sig: append([]common.Digest(nil), sig.Sig...)}
		bad.Sig[i][0] ^= 0x01
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
	assert.False(t, pk.Verify([]byte{}, sig))
	assert.False(t, pk.Verify([]byte("m"), &Signature{Sig: sig.Sig[:255]}))
	assert.False(t, (&PublicKey{}).Verify([]byte("m"), sig))
}

func TestSignErrors(t *testing.T) {
	sk, _ := newKeyPair(t, 7)
	_, err := sk.Sign(nil)
	assert.True(t, errors.Is(err, ErrEmptyMessage))

	_, err = (&PrivateKey{Key: sk.Key[:3]}).Sign([]byte("m"))
	assert.True(t, errors.Is(err, ErrKeyLength))

	_, _, err = GenerateKeyPair(nil)
	assert.True(t, errors.Is(err, ErrNoKeyMaterial))
}

func TestElements(t *testing.T) {
	_, pk := newKeyPair(t, 8)
	el := pk.Elements()
	require.Len(t, el, 512)
	assert.Equal(t, pk.Key[3][0], el[6])
	assert.Equal(t, pk.Key[3][1], el[7])
	assert.Equal(t, common.HashConcat(el...), pk.Hash())
}
