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


package common

import (
	"crypto/sha256"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	assert.Equal(t, Digest(sha256.Sum256([]byte("abc"))), Hash([]byte("abc")))
	assert.Equal(t, Hash([]byte("abc")), Hash([]byte("a"), []byte("bc")))

	a, b := Hash([]byte("a")), Hash([]byte("b"))
	assert.Equal(t, Hash(a[:], b[:]), HashConcat(a, b))
	assert.NotEqual(t, HashConcat(a, b), HashConcat(b, a))
}

func TestDigestText(t *testing.T) {
	d := Hash([]byte("x"))
	assert.Len(t, d.Hex(), 64)

	back, err := HexToDigest("0x" + d.Hex())
	require.NoError(t, err)
	assert.Equal(t, d, back)

	raw, err := json.Marshal(struct{ D Digest }{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"D":"`+d.Hex()+`"}`, string(raw))

	_, err = HexToDigest("abcd")
	assert.Error(t, err)
	_, err = HexToDigest("zz")
	assert.Error(t, err)

	assert.True(t, Digest{}.IsZero())
	assert.False(t, d.IsZero())
	assert.Equal(t, d[:], d.Bytes())
}

func TestShortHex(t *testing.T) {
	assert.Equal(t, "0102", ShortHex([]byte{1, 2}, 4))
	assert.Equal(t, "0102..", ShortHex([]byte{1, 2, 3}, 2))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scheme":"lamport","leaves":8,"node_name":"n1","data_dir":"`+dir+`"}`), 0644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "lamport", cfg.Scheme)
	assert.Equal(t, 8, cfg.Leaves)
	assert.Equal(t, 16, cfg.Winternitz)
	assert.Equal(t, filepath.Join(dir, "n1"), cfg.GetNodeDataDir())
	assert.Equal(t, filepath.Join(dir, "n1", "leveldb"), cfg.GetLevelDBPath())

	require.NoError(t, os.WriteFile(path, []byte(`{"leaves":0}`), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheme = "sphincs"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.KeyGapIter = 1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.CacheSize = -1
	assert.Error(t, cfg.Validate())
}

func TestWriteJSONToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, WriteJSONToFile(map[string]int{"a": 1}, dir, "out.json"))
	raw, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))
}
