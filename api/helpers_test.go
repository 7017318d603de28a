// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package api

import (
	"context"
	"sync"

	"github.com/raywall/fast-valence-client/pkg/auth"
)

// fakeTransport registra as requests e responde com handler.
type fakeTransport struct {
	mu       sync.Mutex
	requests []Request
	handler  func(req *Request) (interface{}, error)
}

func (f *fakeTransport) Do(_ context.Context, req *Request) (interface{}, error) {
	f.mu.Lock()
	f.requests = append(f.requests, *req)
	f.mu.Unlock()
	return f.handler(req)
}

func (f *fakeTransport) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.requests))
	for i, r := range f.requests {
		ops[i] = r.Operation
	}
	return ops
}

func (f *fakeTransport) count(op string) int {
	n := 0
	for _, o := range f.operations() {
		if o == op {
			n++
		}
	}
	return n
}

// countingProvider guarda o total enviado por métrica.
type countingProvider struct {
	mu     sync.Mutex
	counts map[string]float64
}

func newCountingProvider() *countingProvider {
	return &countingProvider{counts: map[string]float64{}}
}

func (c *countingProvider) add(name string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += value
	return nil
}

func (c *countingProvider) Count(name string, value float64, _ []string) error {
	return c.add(name, value)
}

func (c *countingProvider) Gauge(name string, value float64, _ []string) error {
	return c.add(name, value)
}

func (c *countingProvider) Histogram(name string, value float64, _ []string) error {
	return c.add(name, 1)
}

func (c *countingProvider) get(name string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

func testUser() *auth.UserContext {
	return auth.NewApplicationContext("app-id", "app-key").UserContext("u", "k")
}

func loginOK(token string) (interface{}, error) {
	return map[string]interface{}{"token": token}, nil
}
