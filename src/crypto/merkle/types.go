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

// go/src/crypto/merkle/types.go
package merkle

import (
	"errors"
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
)

// MaxLeaves is the largest base the branch table covers.
const MaxLeaves = 512

var (
	ErrEmptyBase        = errors.New("merkle: empty tree base")
	ErrTooManyLeaves    = errors.New("merkle: more than 512 leaves")
	ErrLeafIndex        = errors.New("merkle: leaf index out of range")
	ErrInconsistentTree = errors.New("merkle: authentication path does not match tree layers")
)

// StepKind tells how a path step links to the layer above it.
type StepKind uint8

const (
	// StepPair is an ordered (left, right) sibling pair hashed as H(left || right).
	StepPair StepKind = iota
	// StepCarry is the odd trailing node of a layer, moved up unhashed.
	StepCarry
	// StepRoot is the terminal singleton.
	StepRoot
)

var stepNames = [...]string{"pair", "carry", "root"}

func (k StepKind) String() string {
	if int(k) < len(stepNames) {
		return stepNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k StepKind) MarshalText() ([]byte, error) {
	if int(k) >= len(stepNames) {
		return nil, fmt.Errorf("merkle: invalid step kind %d", uint8(k))
	}
	return []byte(stepNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StepKind) UnmarshalText(text []byte) error {
	for i, name := range stepNames {
		if string(text) == name {
			*k = StepKind(i)
			return nil
		}
	}
	return fmt.Errorf("merkle: unknown step kind %q", text)
}

// Step is one layer of an authentication path. Carry and root steps keep
// their single value in Left.
type Step struct {
	Kind  StepKind      `json:"kind"`
	Left  common.Digest `json:"left"`
	Right common.Digest `json:"right"`
}

// Value returns what the step contributes to the layer above: H(left ||
// right) for a pair, the single value otherwise.
func (s Step) Value() common.Digest {
	if s.Kind == StepPair {
		return common.HashConcat(s.Left, s.Right)
	}
	return s.Left
}

// Contains reports whether v is one of the step operands.
func (s Step) Contains(v common.Digest) bool {
	if s.Kind == StepPair {
		return s.Left == v || s.Right == v
	}
	return s.Left == v
}

// AuthPath is the ordered list of steps from a leaf to the root. It always
// has one step per tree layer and ends with a StepRoot.
type AuthPath []Step

// Tree is a binary hash tree in which an odd trailing node is carried to the
// next layer unpaired. layers[0] holds the leaves, the last layer the root.
type Tree struct {
	layers      [][]common.Digest
	numBranches int
	paths       []AuthPath
}
