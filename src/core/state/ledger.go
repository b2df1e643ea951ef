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

// go/src/core/state/ledger.go

// Package database persists the OTS index ledger in LevelDB so that an index
// signs at most once across process restarts.
package database

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/sphinx-core/hashsig/src/common"
)

// Open opens or creates the ledger database at path.
func Open(path string) (*DB, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger at %s: %w", path, err)
	}
	return NewLevelDBAdapter(ldb), nil
}

func usedKey(root common.Digest, index int) ([]byte, error) {
	if index < 0 || uint64(index) > math.MaxUint32 {
		return nil, fmt.Errorf("database: index %d out of range", index)
	}
	key := make([]byte, 0, len(usedPrefix)+common.HashSize+4)
	key = append(key, usedPrefix...)
	key = append(key, root[:]...)
	return binary.BigEndian.AppendUint32(key, uint32(index)), nil
}

func rootPrefix(root common.Digest) []byte {
	return append(append([]byte(nil), usedPrefix...), root[:]...)
}

// IsUsed reports whether index of root has been consumed.
func (d *DB) IsUsed(root common.Digest, index int) (bool, error) {
	key, err := usedKey(root, index)
	if err != nil {
		return false, err
	}
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.db.Has(key, nil)
}

// MarkUsed records index of root as consumed with a synced write.
func (d *DB) MarkUsed(root common.Digest, index int) error {
	key, err := usedKey(root, index)
	if err != nil {
		return err
	}
	value := binary.BigEndian.AppendUint64(nil, uint64(time.Now().Unix()))

	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.db.Put(key, value, &opt.WriteOptions{Sync: true})
}

// UsedAt returns when index of root was consumed.
func (d *DB) UsedAt(root common.Digest, index int) (time.Time, error) {
	key, err := usedKey(root, index)
	if err != nil {
		return time.Time{}, err
	}
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	value, err := d.db.Get(key, nil)
	if err != nil {
		return time.Time{}, err
	}
	if len(value) != 8 {
		return time.Time{}, fmt.Errorf("%w: %d byte value", ErrCorruptRecord, len(value))
	}
	return time.Unix(int64(binary.BigEndian.Uint64(value)), 0), nil
}

// UsedIndices lists the consumed indices of root in ascending order.
func (d *DB) UsedIndices(root common.Digest) ([]int, error) {
	prefix := rootPrefix(root)

	d.mutex.RLock()
	defer d.mutex.RUnlock()
	iter := d.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var out []int
	for iter.Next() {
		key := iter.Key()
		if len(key) != len(prefix)+4 {
			return nil, fmt.Errorf("%w: key length %d", ErrCorruptRecord, len(key))
		}
		out = append(out, int(binary.BigEndian.Uint32(key[len(prefix):])))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Ints(out)
	return out, nil
}

// IsNotFound reports whether err is LevelDB's missing key error.
func IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Close releases the underlying database.
func (d *DB) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.db.Close()
}
