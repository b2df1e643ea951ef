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


package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/mss"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
)

var _ mss.Ledger = (*DB)(nil)

func memDB(t *testing.T) *DB {
	t.Helper()
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	db := NewLevelDBAdapter(ldb)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMarkUsed(t *testing.T) {
	db := memDB(t)
	root := common.Hash([]byte("root"))
	other := common.Hash([]byte("other"))

	used, err := db.IsUsed(root, 7)
	require.NoError(t, err)
	assert.False(t, used)

	before := time.Now().Add(-time.Second)
	require.NoError(t, db.MarkUsed(root, 7))
	require.NoError(t, db.MarkUsed(root, 300))
	require.NoError(t, db.MarkUsed(root, 2))

	used, err = db.IsUsed(root, 7)
	require.NoError(t, err)
	assert.True(t, used)
	used, err = db.IsUsed(other, 7)
	require.NoError(t, err)
	assert.False(t, used)

	at, err := db.UsedAt(root, 7)
	require.NoError(t, err)
	assert.False(t, at.Before(before.Truncate(time.Second)))

	_, err = db.UsedAt(root, 8)
	assert.True(t, IsNotFound(err))

	indices, err := db.UsedIndices(root)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7, 300}, indices)

	indices, err = db.UsedIndices(other)
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestRejectsBadIndex(t *testing.T) {
	db := memDB(t)
	_, err := db.IsUsed(common.Digest{}, -1)
	assert.Error(t, err)
	assert.Error(t, db.MarkUsed(common.Digest{}, -1))
}

func TestKeyStoreUsesLedger(t *testing.T) {
	db := memDB(t)
	seed := make([]byte, 48)
	cfg := mss.Config{Scheme: ots.SchemeWOTS, Leaves: 2}

	ks, err := mss.NewKeyStore(seed, cfg, mss.WithLedger(db))
	require.NoError(t, err)
	_, err = ks.Sign(0, []byte("once"))
	require.NoError(t, err)

	// A fresh store over the same seed shares the root and the ledger.
	again, err := mss.NewKeyStore(seed, cfg, mss.WithLedger(db))
	require.NoError(t, err)
	_, err = again.Sign(0, []byte("twice"))
	assert.ErrorIs(t, err, mss.ErrIndexUsed)

	next, err := again.NextUnused()
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	require.NoError(t, err)
	root := common.Hash([]byte("persist"))
	require.NoError(t, db.MarkUsed(root, 1))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()
	used, err := db.IsUsed(root, 1)
	require.NoError(t, err)
	assert.True(t, used)
}
