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

// go/src/crypto/mss/ledger.go
package mss

import (
	"sync"

	"github.com/sphinx-core/hashsig/src/common"
)

// MemoryLedger is a Ledger that lives as long as the process.
type MemoryLedger struct {
	mu   sync.RWMutex
	used map[common.Digest]map[int]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{used: make(map[common.Digest]map[int]struct{})}
}

func (l *MemoryLedger) IsUsed(root common.Digest, index int) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.used[root][index]
	return ok, nil
}

func (l *MemoryLedger) MarkUsed(root common.Digest, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	set, ok := l.used[root]
	if !ok {
		set = make(map[int]struct{})
		l.used[root] = set
	}
	set[index] = struct{}{}
	return nil
}
