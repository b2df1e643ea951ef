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

// go/src/http/server.go

// Package http exposes MSS verification over a gin HTTP service.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/mss"
	logger "github.com/sphinx-core/hashsig/src/log"
)

// NewServer creates a verification server. store is optional and only backs
// GET /root; gatherer defaults to the global Prometheus registry.
func NewServer(address string, verifier *mss.Verifier, store *mss.KeyStore, log *zap.Logger, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r := gin.New()
	s := &Server{
		address:  address,
		router:   r,
		verifier: verifier,
		store:    store,
		log:      logger.OrNop(log).Named("http"),
	}
	r.Use(gin.Recovery(), s.accessLog())
	s.setupRoutes(gatherer)
	s.httpServer = &http.Server{
		Addr:              address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes defines HTTP endpoints.
func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.POST("/verify", s.handleVerify)
	s.router.GET("/root", s.handleGetRoot)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("Request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// handleVerify checks a signature against the root in the request.
func (s *Server) handleVerify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Signature == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing signature"})
		return
	}

	var msg []byte
	switch req.Encoding {
	case "", "utf8", "text":
		msg = []byte(req.Message)
	case "hex":
		var err error
		if msg, err = common.Hex2Bytes(req.Message); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hex message: " + err.Error()})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown encoding " + req.Encoding})
		return
	}

	valid := s.verifier.Verify(req.Root, msg, req.Signature)
	c.JSON(http.StatusOK, VerifyResponse{
		Valid: valid,
		Root:  req.Root.Hex(),
		Index: req.Signature.Index,
	})
}

// handleGetRoot returns the public root of the served key store.
func (s *Server) handleGetRoot(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no key store loaded"})
		return
	}
	c.JSON(http.StatusOK, RootResponse{
		Root:   s.store.Root().Hex(),
		Scheme: s.store.Scheme().String(),
		Leaves: s.store.Len(),
		Height: s.store.Height(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("Verification service listening", zap.String("addr", s.address))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
