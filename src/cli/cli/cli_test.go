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


package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphinx-core/hashsig/src/crypto/mss"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Execute(append(args, "-log-level", "error"), &out)
	return out.String(), err
}

func keygen(t *testing.T, dir string, extra ...string) KeygenOutput {
	t.Helper()
	args := append([]string{"keygen", "-datadir", dir, "-scheme", "wots", "-leaves", "2"}, extra...)
	raw, err := run(t, args...)
	require.NoError(t, err)
	var out KeygenOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestKeygenSignVerify(t *testing.T) {
	dir := t.TempDir()
	kg := keygen(t, dir)
	require.NotEmpty(t, kg.Seed)
	assert.Equal(t, "wots", kg.Scheme)
	assert.Equal(t, 2, kg.Leaves)
	assert.Equal(t, 2, kg.Height)

	files, err := filepath.Glob(filepath.Join(dir, "default", "keystore-*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	public, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.NotContains(t, string(public), kg.Seed)

	sigFile := filepath.Join(dir, "sig.json")
	_, err = run(t, "sign", "-datadir", dir, "-scheme", "wots", "-leaves", "2",
		"-seed", kg.Seed, "-msg", "hello", "-out", sigFile)
	require.NoError(t, err)

	raw, err := os.ReadFile(sigFile)
	require.NoError(t, err)
	var sig mss.Signature
	require.NoError(t, json.Unmarshal(raw, &sig))
	assert.Equal(t, 0, sig.Index)

	out, err := run(t, "verify", "-root", kg.Root, "-sig", sigFile, "-msg", "hello")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	out, err = run(t, "verify", "-root", kg.Root, "-sig", sigFile, "-msg", "hellO")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, "invalid\n", out)
}

func TestSignNeverReusesIndex(t *testing.T) {
	dir := t.TempDir()
	kg := keygen(t, dir)
	base := []string{"sign", "-datadir", dir, "-scheme", "wots", "-leaves", "2", "-seed", kg.Seed}

	raw, err := run(t, append(base, "-msg", "a")...)
	require.NoError(t, err)
	var sig mss.Signature
	require.NoError(t, json.Unmarshal([]byte(raw), &sig))
	assert.Equal(t, 0, sig.Index)

	raw, err = run(t, append(base, "-msg", "b")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), &sig))
	assert.Equal(t, 1, sig.Index)

	_, err = run(t, append(base, "-msg", "c", "-index", "0")...)
	assert.ErrorIs(t, err, mss.ErrIndexUsed)

	_, err = run(t, append(base, "-msg", "d")...)
	assert.ErrorIs(t, err, mss.ErrExhausted)
}

func TestPassphraseSeedIsStable(t *testing.T) {
	dir := t.TempDir()
	a := keygen(t, dir, "-passphrase", "correct horse")
	b := keygen(t, dir, "-passphrase", "correct horse")
	c := keygen(t, dir, "-passphrase", "correct horse", "-salt", "other")

	assert.Empty(t, a.Seed)
	assert.Equal(t, a.Root, b.Root)
	assert.NotEqual(t, a.Root, c.Root)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scheme":"wots+","leaves":3,"winternitz":4}`), 0644))

	raw, err := run(t, "keygen", "-config", path, "-datadir", dir)
	require.NoError(t, err)
	var out KeygenOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, "wots+", out.Scheme)
	assert.Equal(t, 4, out.Winternitz)
	assert.Equal(t, 3, out.Leaves)
}

func TestBadInvocations(t *testing.T) {
	dir := t.TempDir()

	err := Execute(nil, &bytes.Buffer{})
	assert.Error(t, err)
	_, err = run(t, "frobnicate")
	assert.Error(t, err)
	_, err = run(t, "keygen", "-datadir", dir, "-leaves", "513")
	assert.Error(t, err)
	_, err = run(t, "sign", "-datadir", dir, "-msg", "x")
	assert.ErrorIs(t, err, errNoSeed)
	_, err = run(t, "sign", "-datadir", dir, "-seed", "abc", "-msg", "x")
	assert.Error(t, err)
	_, err = run(t, "verify", "-root", "zz", "-sig", "none.json", "-msg", "x")
	assert.Error(t, err)
}

func TestSeedEncoding(t *testing.T) {
	seed := passphraseSeed("p", "")
	assert.Len(t, seed, 48)
	back, err := decodeSeed(encodeSeed(seed))
	require.NoError(t, err)
	assert.Equal(t, seed, back)
}
