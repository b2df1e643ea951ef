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

// go/src/crypto/merkle/verify.go
package merkle

import "github.com/sphinx-core/hashsig/src/common"

// VerifyRoot checks that leaf is an operand of the first step, that every
// step's value appears in the step above it, and that the terminal root step
// equals root. It never fails with an error: malformed paths are rejected.
func VerifyRoot(leaf, root common.Digest, path AuthPath) bool {
	if len(path) == 0 || !path[0].Contains(leaf) {
		return false
	}
	for x, step := range path {
		if step.Kind == StepRoot {
			return x == len(path)-1 && step.Left == root
		}
		if step.Kind != StepPair && step.Kind != StepCarry {
			return false
		}
		if x+1 == len(path) || !path[x+1].Contains(step.Value()) {
			return false
		}
	}
	return false
}
