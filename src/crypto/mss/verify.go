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

// go/src/crypto/mss/verify.go
package mss

import (
	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/merkle"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
)

// Verify checks sig against the published root: the OTS signature against
// the carried public key, then that key's hash up the path to root.
func Verify(root common.Digest, message []byte, sig *Signature) bool {
	if sig == nil || len(message) == 0 || sig.Index < 0 {
		return false
	}
	pub, err := ots.DecodePublicKey(sig.Scheme, sig.W, sig.PublicKey)
	if err != nil {
		return false
	}
	if !pub.Verify(message, sig.OTS) {
		return false
	}
	return merkle.VerifyRoot(pub.Hash(), root, sig.Path)
}

// Verifier is Verify with a result cache and an observer.
type Verifier struct {
	cache *VerifyCache
	obs   Observer
}

// NewVerifier caches up to cacheSize results; 0 disables the cache.
func NewVerifier(cacheSize int, obs Observer) (*Verifier, error) {
	v := &Verifier{obs: obs}
	if v.obs == nil {
		v.obs = NopObserver{}
	}
	if cacheSize > 0 {
		c, err := NewVerifyCache(cacheSize)
		if err != nil {
			return nil, err
		}
		v.cache = c
	}
	return v, nil
}

func (v *Verifier) Verify(root common.Digest, message []byte, sig *Signature) bool {
	if sig == nil {
		return false
	}
	if v.cache == nil {
		ok := Verify(root, message, sig)
		v.obs.Verified(sig.Scheme, ok, false)
		return ok
	}

	key := v.cache.Fingerprint(root, message, sig)
	if ok, hit := v.cache.Get(key); hit {
		v.obs.Verified(sig.Scheme, ok, true)
		return ok
	}
	ok := Verify(root, message, sig)
	v.cache.Put(key, ok)
	v.obs.Verified(sig.Scheme, ok, false)
	return ok
}
