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

// go/src/cli/cli/types.go
package cli

import "errors"

// ErrInvalidSignature is returned by verify when the signature does not
// check out. main maps it to exit status 1.
var ErrInvalidSignature = errors.New("signature is invalid")

// Config holds the flags shared by every subcommand.
type Config struct {
	configFile  string
	scheme      string
	leaves      int
	winternitz  int
	workers     int
	seed        string
	passphrase  string
	salt        string
	index       int
	message     string
	messageFile string
	sigFile     string
	outFile     string
	root        string
	remote      string
	dataDir     string
	httpAddr    string
	logLevel    string
}

// KeygenOutput is printed by keygen. Seed is the only secret in it.
type KeygenOutput struct {
	Seed       string `json:"seed,omitempty"`
	PublicSeed string `json:"public_seed"`
	Root       string `json:"root"`
	Scheme     string `json:"scheme"`
	Winternitz int    `json:"winternitz,omitempty"`
	Leaves     int    `json:"leaves"`
	Height     int    `json:"height"`
	Timestamp  string `json:"timestamp"`
}
