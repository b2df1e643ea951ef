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

// go/src/common/config.go
package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DataDir is the default root for ledgers and output files
	DataDir = "data"

	// MaxLeaves is the largest tree the Merkle layer supports.
	MaxLeaves = 512
)

// Config is the on-disk configuration of the hashsig tool and service.
type Config struct {
	Scheme     string `json:"scheme"`       // "wots", "wots+" or "lamport"
	Leaves     int    `json:"leaves"`       // number of OTS key pairs, 1..512
	Winternitz int    `json:"winternitz"`   // w for Winternitz+
	DataDir    string `json:"data_dir"`     // root for the index ledger
	HTTPAddr   string `json:"http_addr"`    // listen address of the verification service
	LogLevel   string `json:"log_level"`    // debug, info, warn, error
	CacheSize  int    `json:"cache_size"`   // verification cache entries, 0 disables
	Workers    int    `json:"workers"`      // key generation workers, 0 = NumCPU
	NodeName   string `json:"node_name"`    // subdirectory of DataDir
	KeyGapIter int    `json:"key_gap_iter"` // DRBG iterations separating public and private seeds
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Scheme:     "wots",
		Leaves:     4,
		Winternitz: 16,
		DataDir:    DataDir,
		HTTPAddr:   "127.0.0.1:8547",
		LogLevel:   "info",
		CacheSize:  1024,
		NodeName:   "default",
		KeyGapIter: 9999,
	}
}

// Validate checks the ranges the signing core enforces anyway, so that a bad
// file is reported before any key material is derived.
func (c *Config) Validate() error {
	switch c.Scheme {
	case "wots", "wots+", "lamport":
	default:
		return fmt.Errorf("unknown scheme %q", c.Scheme)
	}
	if c.Leaves < 1 || c.Leaves > MaxLeaves {
		return fmt.Errorf("leaves must be in 1..%d, got %d", MaxLeaves, c.Leaves)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.KeyGapIter < 2 {
		return fmt.Errorf("key_gap_iter must be at least 2, got %d", c.KeyGapIter)
	}
	return nil
}

// LoadConfig reads a JSON file on top of DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// GetNodeDataDir returns the standardized data directory for a node
func (c *Config) GetNodeDataDir() string {
	return filepath.Join(c.DataDir, c.NodeName)
}

// GetLevelDBPath returns the standardized LevelDB path for a node
func (c *Config) GetLevelDBPath() string {
	return filepath.Join(c.GetNodeDataDir(), "leveldb")
}

// WriteJSONToFile writes data as indented JSON under dir/filename.
func WriteJSONToFile(data interface{}, dir, filename string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filePath := filepath.Join(dir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
