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

// go/src/common/hash.go
package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashSize is the output size of H in bytes.
const HashSize = 32

// Digest is a fixed-width output of H. Every key element, chain value and
// tree node in this module is a Digest.
type Digest [HashSize]byte

// Hash computes H(data[0] || data[1] || ...) with SHA-256.
//
// Base Winternitz and the Merkle tree rely on H being collision resistant.
// Winternitz+ only needs H (keyed, as F) to be one-way. Both trust
// assumptions are served by the same function here.
func Hash(data ...[]byte) Digest {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// HashConcat hashes the concatenation of the given digests.
func HashConcat(ds ...Digest) Digest {
	h := sha256.New()
	for i := range ds {
		h.Write(ds[i][:])
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// BytesToDigest copies b into a Digest. It fails unless len(b) == HashSize.
func BytesToDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != HashSize {
		return d, fmt.Errorf("invalid digest length: expected %d bytes, got %d", HashSize, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// Bytes returns a copy of the digest as a slice.
func (d Digest) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, d[:])
	return b
}

// Hex returns the lowercase hex encoding, always 64 characters.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// IsZero reports whether every byte of d is zero.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	b, err := Hex2Bytes(string(text))
	if err != nil {
		return fmt.Errorf("invalid digest hex: %w", err)
	}
	v, err := BytesToDigest(b)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// HexToDigest parses a 64-character hex string, with or without 0x prefix.
func HexToDigest(s string) (Digest, error) {
	var d Digest
	err := d.UnmarshalText([]byte(s))
	return d, err
}
