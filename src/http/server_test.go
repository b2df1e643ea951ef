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


package http

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sphinx-core/hashsig/src/crypto/mss"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	srv   *Server
	store *mss.KeyStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := mss.NewMetrics(reg)
	store, err := mss.NewKeyStore(make([]byte, 48), mss.Config{Scheme: ots.SchemeWOTSPlus, Leaves: 4}, mss.WithObserver(metrics))
	require.NoError(t, err)
	verifier, err := mss.NewVerifier(16, metrics)
	require.NoError(t, err)
	return fixture{
		srv:   NewServer("127.0.0.1:0", verifier, store, zaptest.NewLogger(t), reg),
		store: store,
	}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	return w
}

func TestVerifyEndpoint(t *testing.T) {
	f := newFixture(t)
	sig, err := f.store.Sign(1, []byte("hello"))
	require.NoError(t, err)

	w := f.do(t, http.MethodPost, "/verify", VerifyRequest{Root: f.store.Root(), Message: "hello", Signature: sig})
	require.Equal(t, http.StatusOK, w.Code)
	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, 1, resp.Index)
	assert.Equal(t, f.store.Root().Hex(), resp.Root)

	w = f.do(t, http.MethodPost, "/verify", VerifyRequest{
		Root: f.store.Root(), Message: hex.EncodeToString([]byte("hello")), Encoding: "hex", Signature: sig,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)

	w = f.do(t, http.MethodPost, "/verify", VerifyRequest{Root: f.store.Root(), Message: "goodbye", Signature: sig})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
}

func TestVerifyBadRequests(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/verify", VerifyRequest{Root: f.store.Root(), Message: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sig := &mss.Signature{Scheme: ots.SchemeWOTS}
	w = f.do(t, http.MethodPost, "/verify", VerifyRequest{Message: "zz", Encoding: "hex", Signature: sig})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/verify", VerifyRequest{Message: "x", Encoding: "base64", Signature: sig})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRootEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/root", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RootResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, f.store.Root().Hex(), resp.Root)
	assert.Equal(t, "wots+", resp.Scheme)
	assert.Equal(t, 4, resp.Leaves)
	assert.Equal(t, 3, resp.Height)

	verifier, err := mss.NewVerifier(0, nil)
	require.NoError(t, err)
	bare := fixture{srv: NewServer("", verifier, nil, nil, prometheus.NewRegistry())}
	w = bare.do(t, http.MethodGet, "/root", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mss_tree_height 3")
}

func TestSubmitVerify(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.srv.Handler())
	defer ts.Close()

	sig, err := f.store.Sign(0, []byte("remote"))
	require.NoError(t, err)
	resp, err := SubmitVerify(ts.URL, VerifyRequest{Root: f.store.Root(), Message: "remote", Signature: sig})
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	_, err = SubmitVerify(ts.URL, VerifyRequest{Root: f.store.Root(), Message: "remote"})
	assert.Error(t, err)
}

func TestStartShutdown(t *testing.T) {
	verifier, err := mss.NewVerifier(0, nil)
	require.NoError(t, err)
	srv := NewServer("127.0.0.1:0", verifier, nil, nil, prometheus.NewRegistry())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}
