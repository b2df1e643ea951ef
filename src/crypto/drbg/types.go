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

// go/src/crypto/drbg/types.go
package drbg

import "errors"

const (
	// SecurityStrength is the default and maximum strength in bits.
	SecurityStrength = 256

	// MaxRequestBits caps the output of a single Generate call.
	MaxRequestBits = 7500

	// MaxRequestBytes is the largest whole-byte request, floor(7500/8).
	MaxRequestBytes = MaxRequestBits / 8

	// ReseedLimit is the reseed counter value at which an instance is exhausted.
	// Counting starts at 1, so an instance serves ReseedLimit-1 requests.
	ReseedLimit = 80001

	// SeedSize is the entropy length for a 256-bit instance (1.5 x 32 bytes).
	SeedSize = 48

	// DefaultKeyGap separates the private (1st) and public (n-th) sub-seeds.
	DefaultKeyGap = 9999

	outLen = 32
)

var (
	ErrEntropyTooShort  = errors.New("drbg: entropy shorter than 1.5x security strength")
	ErrStrengthExceeded = errors.New("drbg: requested security strength exceeds instance strength")
	ErrRequestTooLarge  = errors.New("drbg: cannot generate more than 7500 bits in a single call")
	ErrInvalidLength    = errors.New("drbg: negative request length")
	ErrExhausted        = errors.New("drbg: reseed counter limit reached, instantiate with fresh entropy")
	ErrInvalidIndex     = errors.New("drbg: index must be an integer greater than 0")
	ErrInvalidStrength  = errors.New("drbg: security strength must be 112, 128, 192 or 256")
)

// HMACDRBG is an HMAC-SHA256 deterministic random bit generator following
// NIST SP 800-90A section 10.1.2.
//
// An instance is a sequential state machine: every Generate call consumes
// the state the next one depends on. It is not safe for concurrent use, and
// two callers must never share one instance, or they would draw overlapping
// output. No reseed path exists: once Generate returns ErrExhausted the
// instance stays exhausted and must be replaced by a new one built from
// fresh entropy.
type HMACDRBG struct {
	k             [outLen]byte
	v             [outLen]byte
	reseedCounter uint64
	reseedLimit   uint64
	strength      int
}
