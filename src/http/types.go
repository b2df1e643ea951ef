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

// go/src/http/types.go
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/mss"
)

// Server answers verification requests against published MSS roots.
type Server struct {
	address    string
	router     *gin.Engine
	verifier   *mss.Verifier
	store      *mss.KeyStore
	log        *zap.Logger
	httpServer *http.Server
}

// VerifyRequest is the body of POST /verify. Message is taken as raw bytes
// unless Encoding is "hex".
type VerifyRequest struct {
	Root      common.Digest  `json:"root"`
	Message   string         `json:"message"`
	Encoding  string         `json:"encoding,omitempty"`
	Signature *mss.Signature `json:"signature"`
}

// VerifyResponse is the answer to POST /verify.
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Root  string `json:"root"`
	Index int    `json:"index"`
}

// RootResponse describes the key store served by GET /root.
type RootResponse struct {
	Root   string `json:"root"`
	Scheme string `json:"scheme"`
	Leaves int    `json:"leaves"`
	Height int    `json:"height"`
}
