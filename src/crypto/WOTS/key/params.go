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

// go/src/crypto/WOTS/key/params.go
package wots

import (
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
)

// SupportedW is the only Winternitz parameter this variant accepts: each
// chain signs one byte of the message digest.
const SupportedW = 8

// NewWOTSParams initializes WOTS parameters. Only w = 8 is supported; the
// byte-per-chain signing rule does not generalize to other widths.
func NewWOTSParams(w int) (WOTSParams, error) {
	if w != SupportedW {
		return WOTSParams{}, fmt.Errorf("%w: got %d", ErrUnsupportedW, w)
	}
	return WOTSParams{
		W:          w,
		N:          common.HashSize,
		T:          256 / w,
		Iterations: 1<<w - 1,
	}, nil
}

// DefaultParams returns the w = 8 parameters.
func DefaultParams() WOTSParams {
	p, _ := NewWOTSParams(SupportedW)
	return p
}
