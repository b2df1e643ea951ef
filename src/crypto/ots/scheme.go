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

// go/src/crypto/ots/scheme.go

// Package ots puts the one-time signature schemes behind a single key pair
// interface and derives each key pair from a seed and a leaf index.
package ots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sphinx-core/hashsig/src/common"
)

// Scheme identifies a one-time signature family.
type Scheme uint8

const (
	SchemeWOTS     Scheme = iota + 1 // plain Winternitz, w = 8
	SchemeWOTSPlus                   // checksummed Winternitz+
	SchemeLamport                    // Lamport-Diffie
)

var (
	ErrUnknownScheme = errors.New("ots: unknown scheme")
	ErrEmptyMessage  = errors.New("ots: empty message")
	ErrElements      = errors.New("ots: public key element count does not match scheme")
)

func (s Scheme) String() string {
	switch s {
	case SchemeWOTS:
		return "wots"
	case SchemeWOTSPlus:
		return "wots+"
	case SchemeLamport:
		return "lamport"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// ParseScheme accepts the names printed by String plus a few spellings used
// on command lines.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wots", "winternitz":
		return SchemeWOTS, nil
	case "wots+", "wotsp", "wots-plus", "wotsplus":
		return SchemeWOTSPlus, nil
	case "lamport", "ld", "lamport-diffie":
		return SchemeLamport, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	switch s {
	case SchemeWOTS, SchemeWOTSPlus, SchemeLamport:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, uint8(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Signature is the scheme-independent form of a one-time signature.
type Signature []common.Digest

// PublicKey verifies one-time signatures and commits to a Merkle leaf.
type PublicKey interface {
	Scheme() Scheme
	// W is the Winternitz radix, 0 for Lamport.
	W() int
	// Elements is the flat serialization that Hash commits to.
	Elements() []common.Digest
	Hash() common.Digest
	Verify(message []byte, sig Signature) bool
}

// KeyPair is a private one-time key with its public half.
type KeyPair interface {
	Public() PublicKey
	Sign(message []byte) (Signature, error)
}
