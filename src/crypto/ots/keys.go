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

// go/src/crypto/ots/keys.go
package ots

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
	wots "github.com/sphinx-core/hashsig/src/crypto/WOTS/key"
	wotsp "github.com/sphinx-core/hashsig/src/crypto/WOTS/plus"
	"github.com/sphinx-core/hashsig/src/crypto/drbg"
	"github.com/sphinx-core/hashsig/src/crypto/lamport"
)

// Personalization is the DRBG personalization string of leaf index.
func Personalization(index uint32) []byte {
	var p [4]byte
	binary.BigEndian.PutUint32(p[:], index)
	return p[:]
}

// Generate derives the key pair of leaf index from seed. w is only read for
// Winternitz+; plain Winternitz is fixed at w = 8.
func Generate(scheme Scheme, w int, seed []byte, index uint32) (KeyPair, error) {
	src, err := drbg.New(seed, Personalization(index))
	if err != nil {
		return nil, fmt.Errorf("leaf %d: %w", index, err)
	}
	return GenerateFrom(scheme, w, src)
}

// GenerateFrom draws a key pair from an already instantiated source.
func GenerateFrom(scheme Scheme, w int, src *drbg.HMACDRBG) (KeyPair, error) {
	switch scheme {
	case SchemeWOTS:
		sk, pk, err := wots.GenerateKeyPair(wots.DefaultParams(), src)
		if err != nil {
			return nil, err
		}
		return &wotsKeyPair{sk: sk, pk: &wotsPublicKey{pk}}, nil
	case SchemeWOTSPlus:
		params, err := wotsp.NewParams(w)
		if err != nil {
			return nil, err
		}
		sk, pk, err := wotsp.GenerateKeyPair(params, src)
		if err != nil {
			return nil, err
		}
		return &wotspKeyPair{sk: sk, pk: &wotspPublicKey{pk}}, nil
	case SchemeLamport:
		sk, pk, err := lamport.GenerateKeyPair(src)
		if err != nil {
			return nil, err
		}
		return &lamportKeyPair{sk: sk, pk: &lamportPublicKey{pk}}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, uint8(scheme))
}

// DecodePublicKey rebuilds a public key from its Elements.
func DecodePublicKey(scheme Scheme, w int, elements []common.Digest) (PublicKey, error) {
	elems := append([]common.Digest(nil), elements...)
	switch scheme {
	case SchemeWOTS:
		params := wots.DefaultParams()
		if len(elems) != params.T {
			return nil, fmt.Errorf("%w: wots wants %d, got %d", ErrElements, params.T, len(elems))
		}
		return &wotsPublicKey{&wots.PublicKey{Params: params, Key: elems}}, nil
	case SchemeWOTSPlus:
		params, err := wotsp.NewParams(w)
		if err != nil {
			return nil, err
		}
		want := params.W - 1 + 1 + params.L
		if len(elems) != want {
			return nil, fmt.Errorf("%w: wots+ wants %d, got %d", ErrElements, want, len(elems))
		}
		return &wotspPublicKey{&wotsp.PublicKey{
			Params: params,
			R:      elems[:params.W-1],
			K:      elems[params.W-1],
			Key:    elems[params.W:],
		}}, nil
	case SchemeLamport:
		if len(elems) != 2*lamport.NumPairs {
			return nil, fmt.Errorf("%w: lamport wants %d, got %d", ErrElements, 2*lamport.NumPairs, len(elems))
		}
		pairs := make([]lamport.Pair, lamport.NumPairs)
		for i := range pairs {
			pairs[i] = lamport.Pair{elems[2*i], elems[2*i+1]}
		}
		return &lamportPublicKey{&lamport.PublicKey{Key: pairs}}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, uint8(scheme))
}

func mapSignError(err error) error {
	switch {
	case errors.Is(err, wots.ErrEmptyMessage),
		errors.Is(err, wotsp.ErrEmptyMessage),
		errors.Is(err, lamport.ErrEmptyMessage):
		return fmt.Errorf("%w: %w", ErrEmptyMessage, err)
	}
	return err
}

type wotsKeyPair struct {
	sk *wots.PrivateKey
	pk *wotsPublicKey
}

func (kp *wotsKeyPair) Public() PublicKey { return kp.pk }

func (kp *wotsKeyPair) Sign(message []byte) (Signature, error) {
	sig, err := kp.sk.Sign(message)
	if err != nil {
		return nil, mapSignError(err)
	}
	return sig.Sig, nil
}

type wotsPublicKey struct{ *wots.PublicKey }

func (pk *wotsPublicKey) Scheme() Scheme { return SchemeWOTS }
func (pk *wotsPublicKey) W() int         { return pk.Params.W }

func (pk *wotsPublicKey) Elements() []common.Digest {
	return append([]common.Digest(nil), pk.Key...)
}

func (pk *wotsPublicKey) Verify(message []byte, sig Signature) bool {
	return pk.PublicKey.Verify(message, &wots.Signature{Params: pk.Params, Sig: sig})
}

type wotspKeyPair struct {
	sk *wotsp.PrivateKey
	pk *wotspPublicKey
}

func (kp *wotspKeyPair) Public() PublicKey { return kp.pk }

func (kp *wotspKeyPair) Sign(message []byte) (Signature, error) {
	sig, err := kp.sk.Sign(message)
	if err != nil {
		return nil, mapSignError(err)
	}
	return sig.Sig, nil
}

type wotspPublicKey struct{ *wotsp.PublicKey }

func (pk *wotspPublicKey) Scheme() Scheme { return SchemeWOTSPlus }
func (pk *wotspPublicKey) W() int         { return pk.Params.W }

func (pk *wotspPublicKey) Verify(message []byte, sig Signature) bool {
	return pk.PublicKey.Verify(message, &wotsp.Signature{Params: pk.Params, Sig: sig})
}

type lamportKeyPair struct {
	sk *lamport.PrivateKey
	pk *lamportPublicKey
}

func (kp *lamportKeyPair) Public() PublicKey { return kp.pk }

func (kp *lamportKeyPair) Sign(message []byte) (Signature, error) {
	sig, err := kp.sk.Sign(message)
	if err != nil {
		return nil, mapSignError(err)
	}
	return sig.Sig, nil
}

type lamportPublicKey struct{ *lamport.PublicKey }

func (pk *lamportPublicKey) Scheme() Scheme { return SchemeLamport }
func (pk *lamportPublicKey) W() int         { return 0 }

func (pk *lamportPublicKey) Verify(message []byte, sig Signature) bool {
	return pk.PublicKey.Verify(message, &lamport.Signature{Sig: sig})
}

var (
	_ PublicKey = (*wotsPublicKey)(nil)
	_ PublicKey = (*wotspPublicKey)(nil)
	_ PublicKey = (*lamportPublicKey)(nil)
)
