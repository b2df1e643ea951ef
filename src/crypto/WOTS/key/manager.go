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

// go/src/crypto/WOTS/key/manager.go
package wots

import "fmt"

// NewKeyManager initializes a KeyManager whose key pairs are drawn from src.
func NewKeyManager(src Source) (*KeyManager, error) {
	params := DefaultParams()
	sk, pk, err := GenerateKeyPair(params, src)
	if err != nil {
		return nil, fmt.Errorf("failed to generate initial key pair: %w", err)
	}
	return &KeyManager{
		Params:    params,
		CurrentSK: sk,
		CurrentPK: pk,
		source:    src,
	}, nil
}

// SignAndRotate signs message with the current key, then replaces the
// current key pair. It returns the signature, the public key that verifies
// it and the public key of the next signature.
func (km *KeyManager) SignAndRotate(message []byte) (*Signature, *PublicKey, *PublicKey, error) {
	if km.CurrentSK == nil {
		return nil, nil, nil, ErrKeyConsumed
	}
	sig, err := km.CurrentSK.Sign(message)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to sign message: %w", err)
	}
	currentPK := km.CurrentPK

	newSK, newPK, err := GenerateKeyPair(km.Params, km.source)
	if err != nil {
		// The current key has signed; it must not be offered again.
		km.CurrentSK = nil
		return nil, nil, nil, fmt.Errorf("failed to generate new key pair: %w", err)
	}

	km.CurrentSK = newSK
	km.CurrentPK = newPK
	km.NextPK = newPK

	return sig, currentPK, newPK, nil
}
