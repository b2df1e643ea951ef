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

// go/src/crypto/drbg/drbg.go
package drbg

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
)

// New instantiates a 256-bit HMAC-DRBG from entropy and an optional
// personalization string. Entropy must be at least SeedSize bytes.
func New(entropy, personalization []byte) (*HMACDRBG, error) {
	return NewWithStrength(entropy, personalization, SecurityStrength)
}

// NewWithStrength instantiates an HMAC-DRBG with the given security strength.
// Entropy must be at least 1.5x the strength, in bytes.
func NewWithStrength(entropy, personalization []byte, strength int) (*HMACDRBG, error) {
	switch strength {
	case 112, 128, 192, 256:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStrength, strength)
	}
	if need := strength * 3 / 16; len(entropy) < need {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrEntropyTooShort, need, len(entropy))
	}
	d := &HMACDRBG{
		strength:    strength,
		reseedLimit: ReseedLimit,
	}
	d.instantiate(entropy, personalization)
	return d, nil
}

func (d *HMACDRBG) instantiate(entropy, personalization []byte) {
	seedMaterial := make([]byte, 0, len(entropy)+len(personalization))
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, personalization...)

	for i := range d.k {
		d.k[i] = 0x00
		d.v[i] = 0x01
	}
	d.update(seedMaterial)
	d.reseedCounter = 1
}

func (d *HMACDRBG) mac(data ...[]byte) [outLen]byte {
	h := hmac.New(sha256.New, d.k[:])
	for _, b := range data {
		h.Write(b)
	}
	var out [outLen]byte
	h.Sum(out[:0])
	return out
}

// update is the HMAC_DRBG_Update function. The second round only runs when
// seedMaterial is non-empty.
func (d *HMACDRBG) update(seedMaterial []byte) {
	d.k = d.mac(d.v[:], []byte{0x00}, seedMaterial)
	d.v = d.mac(d.v[:])

	if len(seedMaterial) == 0 {
		return
	}
	d.k = d.mac(d.v[:], []byte{0x01}, seedMaterial)
	d.v = d.mac(d.v[:])
}

// Generate returns numBytes of output. It fails with ErrRequestTooLarge when
// numBytes*8 exceeds 7500, with ErrStrengthExceeded when requestedStrength is
// above the instance strength, and with ErrExhausted once the reseed counter
// has reached its limit.
func (d *HMACDRBG) Generate(numBytes, requestedStrength int) ([]byte, error) {
	if numBytes < 0 {
		return nil, ErrInvalidLength
	}
	if numBytes*8 > MaxRequestBits {
		return nil, fmt.Errorf("%w: requested %d bytes", ErrRequestTooLarge, numBytes)
	}
	if requestedStrength > d.strength {
		return nil, fmt.Errorf("%w (%d > %d)", ErrStrengthExceeded, requestedStrength, d.strength)
	}
	if d.Exhausted() {
		return nil, ErrExhausted
	}

	out := make([]byte, 0, numBytes+outLen)
	for len(out) < numBytes {
		d.v = d.mac(d.v[:])
		out = append(out, d.v[:]...)
	}

	d.update(nil)
	d.reseedCounter++

	return out[:numBytes], nil
}

// Digest draws one 32-byte value at the instance strength.
func (d *HMACDRBG) Digest() (common.Digest, error) {
	var out common.Digest
	b, err := d.Generate(common.HashSize, d.strength)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// Digests draws n consecutive 32-byte values.
func (d *HMACDRBG) Digests(n int) ([]common.Digest, error) {
	out := make([]common.Digest, n)
	for i := range out {
		v, err := d.Digest()
		if err != nil {
			return nil, fmt.Errorf("digest %d of %d: %w", i+1, n, err)
		}
		out[i] = v
	}
	return out, nil
}

// Exhausted reports whether the instance can no longer generate output.
func (d *HMACDRBG) Exhausted() bool {
	return d.reseedCounter >= d.reseedLimit
}

// ReseedCounter returns the current counter; it starts at 1.
func (d *HMACDRBG) ReseedCounter() uint64 {
	return d.reseedCounter
}

// Strength returns the instance security strength in bits.
func (d *HMACDRBG) Strength() int {
	return d.strength
}
