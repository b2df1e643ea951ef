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

// go/src/crypto/merkle/tree.go

// Package merkle builds the asymmetric Merkle tree over OTS public-key hashes
// and derives one authentication path per leaf.
package merkle

import (
	"fmt"

	"github.com/sphinx-core/hashsig/src/common"
)

// branchTable maps the upper bound of a leaf-count range to the number of
// layers built above the base.
var branchTable = []struct {
	maxLeaves int
	branches  int
}{
	{2, 1}, {4, 2}, {8, 3}, {16, 4}, {32, 5},
	{64, 6}, {128, 7}, {256, 8}, {512, 9},
}

// NumBranches returns how many layers sit above a base of n leaves.
func NumBranches(n int) (int, error) {
	if n < 1 {
		return 0, ErrEmptyBase
	}
	for _, e := range branchTable {
		if n <= e.maxLeaves {
			return e.branches, nil
		}
	}
	return 0, fmt.Errorf("%w: got %d", ErrTooManyLeaves, n)
}

// New builds the tree over leaves and derives every authentication path.
func New(leaves []common.Digest) (*Tree, error) {
	numBranches, err := NumBranches(len(leaves))
	if err != nil {
		return nil, err
	}

	base := make([]common.Digest, len(leaves))
	copy(base, leaves)

	t := &Tree{
		layers:      make([][]common.Digest, 0, numBranches+1),
		numBranches: numBranches,
	}
	t.layers = append(t.layers, base)

	layer := base
	for x := 0; x < numBranches; x++ {
		layer = nextLayer(layer)
		t.layers = append(t.layers, layer)
	}
	if len(layer) != 1 {
		return nil, fmt.Errorf("%w: %d nodes in top layer", ErrInconsistentTree, len(layer))
	}

	t.paths = make([]AuthPath, len(base))
	for i := range base {
		if t.paths[i], err = t.derivePath(i); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Build is New reduced to its outputs: the root and one path per leaf.
func Build(leaves []common.Digest) (common.Digest, []AuthPath, error) {
	t, err := New(leaves)
	if err != nil {
		return common.Digest{}, nil, err
	}
	return t.Root(), t.paths, nil
}

// nextLayer hashes adjacent nodes pairwise. A trailing odd node moves up unchanged.
func nextLayer(layer []common.Digest) []common.Digest {
	next := make([]common.Digest, 0, (len(layer)+1)/2)
	for y := 0; y < len(layer); y += 2 {
		if y+1 == len(layer) {
			next = append(next, layer[y])
			break
		}
		next = append(next, common.HashConcat(layer[y], layer[y+1]))
	}
	return next
}

// derivePath walks from leaf index up to the root. The sibling at each layer
// is index^1; when that falls outside the layer the node was carried.
func (t *Tree) derivePath(index int) (AuthPath, error) {
	path := make(AuthPath, 0, len(t.layers))
	idx := index
	for x := 0; x < t.numBranches; x++ {
		layer, above := t.layers[x], t.layers[x+1]

		var step Step
		if sib := idx ^ 1; sib >= len(layer) {
			step = Step{Kind: StepCarry, Left: layer[idx]}
		} else {
			step = Step{Kind: StepPair, Left: layer[idx&^1], Right: layer[idx|1]}
		}
		if idx/2 >= len(above) || step.Value() != above[idx/2] {
			return nil, fmt.Errorf("%w: leaf %d, layer %d", ErrInconsistentTree, index, x)
		}
		path = append(path, step)
		idx /= 2
	}
	return append(path, Step{Kind: StepRoot, Left: t.Root()}), nil
}

// Root returns the single node of the top layer.
func (t *Tree) Root() common.Digest {
	return t.layers[len(t.layers)-1][0]
}

// Height is the number of layers, leaves and root included.
func (t *Tree) Height() int {
	return len(t.layers)
}

// NumBranches is the number of layers above the leaves.
func (t *Tree) NumBranches() int {
	return t.numBranches
}

// NumLeaves returns the size of the base layer.
func (t *Tree) NumLeaves() int {
	return len(t.layers[0])
}

// Layer returns a copy of layer x, 0 being the leaves.
func (t *Tree) Layer(x int) []common.Digest {
	if x < 0 || x >= len(t.layers) {
		return nil
	}
	return append([]common.Digest(nil), t.layers[x]...)
}

// Path returns a copy of the authentication path of leaf index.
func (t *Tree) Path(index int) (AuthPath, error) {
	if index < 0 || index >= len(t.paths) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLeafIndex, index, len(t.paths))
	}
	return append(AuthPath(nil), t.paths[index]...), nil
}
