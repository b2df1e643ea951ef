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

// go/src/crypto/drbg/gen.go
package drbg

import (
	"crypto/rand"
	"fmt"
)

// NewSeed returns SeedSize bytes from the operating system CSPRNG.
func NewSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to read seed entropy: %w", err)
	}
	return seed, nil
}

// Gen instantiates a fresh generator from seed and returns its i-th l-byte
// output, i >= 1.
func Gen(seed []byte, i, l int) ([]byte, error) {
	if i < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIndex, i)
	}
	d, err := New(seed, nil)
	if err != nil {
		return nil, err
	}
	var out []byte
	for x := 0; x < i; x++ {
		if out, err = d.Generate(l, SecurityStrength); err != nil {
			return nil, fmt.Errorf("generate %d of %d: %w", x+1, i, err)
		}
	}
	return out, nil
}

// Derive is Gen: it splits one seed into independent sub-seeds by position.
func Derive(seed []byte, index, length int) ([]byte, error) {
	return Gen(seed, index, length)
}

// GenRange returns outputs start..end inclusive, each l bytes, start >= 1.
func GenRange(seed []byte, start, end, l int) ([][]byte, error) {
	if start < 1 {
		return nil, fmt.Errorf("%w: start %d", ErrInvalidIndex, start)
	}
	if end < start {
		return nil, fmt.Errorf("%w: end %d before start %d", ErrInvalidIndex, end, start)
	}
	d, err := New(seed, nil)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, end-start+1)
	for x := 1; x <= end; x++ {
		b, err := d.Generate(l, SecurityStrength)
		if err != nil {
			return nil, fmt.Errorf("generate %d of %d: %w", x, end, err)
		}
		if x >= start {
			out = append(out, b)
		}
	}
	return out, nil
}

// NewKeys splits seed into a private sub-seed (output 1) and a public
// sub-seed (output n), both SeedSize bytes. Recovering the private one from
// the public one requires inverting the generator. A nil seed is replaced by
// fresh entropy and n <= 0 selects DefaultKeyGap.
func NewKeys(seed []byte, n int) (s, publicSeed, privateSeed []byte, err error) {
	if seed == nil {
		if seed, err = NewSeed(); err != nil {
			return nil, nil, nil, err
		}
	}
	if n <= 0 {
		n = DefaultKeyGap
	}
	if n < 2 {
		return nil, nil, nil, fmt.Errorf("%w: key gap must be at least 2, got %d", ErrInvalidIndex, n)
	}
	if privateSeed, err = Gen(seed, 1, SeedSize); err != nil {
		return nil, nil, nil, err
	}
	if publicSeed, err = Gen(seed, n, SeedSize); err != nil {
		return nil, nil, nil, err
	}
	return seed, publicSeed, privateSeed, nil
}
