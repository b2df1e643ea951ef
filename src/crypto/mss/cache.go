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

// go/src/crypto/mss/cache.go
package mss

import (
	"crypto/rand"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/minio/highwayhash"

	"github.com/sphinx-core/hashsig/src/common"
)

// checksum is a 256-bit HighwayHash fingerprint.
type checksum struct {
	v1, v2, v3, v4 uint64
}

// VerifyCache remembers verification results keyed by a HighwayHash of
// (root, message, signature). The hash key is random per process, so
// fingerprints cannot be precomputed by a client. Oldest entries are evicted
// first.
type VerifyCache struct {
	mu      sync.Mutex
	hash    hash.Hash
	size    int
	results map[checksum]bool
	order   []checksum
}

func NewVerifyCache(size int) (*VerifyCache, error) {
	highwayKey := make([]byte, 32)
	if _, err := rand.Read(highwayKey); err != nil {
		return nil, err
	}
	h, err := highwayhash.New(highwayKey)
	if err != nil {
		return nil, err
	}
	return &VerifyCache{
		hash:    h,
		size:    size,
		results: make(map[checksum]bool, size),
		order:   make([]checksum, 0, size),
	}, nil
}

// Fingerprint hashes every field that affects the verification result.
func (c *VerifyCache) Fingerprint(root common.Digest, message []byte, sig *Signature) checksum {
	c.mu.Lock()
	defer c.mu.Unlock()

	var hdr [8]byte
	writeLen := func(n int) {
		binary.BigEndian.PutUint64(hdr[:], uint64(n))
		c.hash.Write(hdr[:])
	}

	c.hash.Reset()
	c.hash.Write(root[:])
	writeLen(len(message))
	c.hash.Write(message)
	writeLen(int(sig.Scheme))
	writeLen(sig.W)
	writeLen(sig.Index)
	writeLen(len(sig.OTS))
	for _, d := range sig.OTS {
		c.hash.Write(d[:])
	}
	writeLen(len(sig.PublicKey))
	for _, d := range sig.PublicKey {
		c.hash.Write(d[:])
	}
	writeLen(len(sig.Path))
	for _, s := range sig.Path {
		c.hash.Write([]byte{byte(s.Kind)})
		c.hash.Write(s.Left[:])
		c.hash.Write(s.Right[:])
	}

	sum := c.hash.Sum(nil)
	codec := binary.BigEndian
	return checksum{
		v1: codec.Uint64(sum),
		v2: codec.Uint64(sum[8:]),
		v3: codec.Uint64(sum[16:]),
		v4: codec.Uint64(sum[24:]),
	}
}

func (c *VerifyCache) Get(key checksum) (valid, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	valid, ok = c.results[key]
	return valid, ok
}

func (c *VerifyCache) Put(key checksum, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.results[key]; ok {
		c.results[key] = valid
		return
	}
	if len(c.order) >= c.size {
		delete(c.results, c.order[0])
		c.order = c.order[1:]
	}
	c.results[key] = valid
	c.order = append(c.order, key)
}

// Len is the number of cached results.
func (c *VerifyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}
