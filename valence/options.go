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
package valence

import (
	"github.com/raywall/fast-valence-client/api"
	"github.com/raywall/fast-valence-client/pkg/auth"
	"github.com/raywall/fast-valence-client/pkg/metrics"
	"github.com/rs/zerolog"
)

// Option configura o Client.
type Option func(*options)

type options struct {
	httpClient  api.HTTPDoer
	transport   api.Transport
	logger      *zerolog.Logger
	provider    metrics.Provider
	store       auth.Store
	clock       auth.Clock
	fanOutLimit *int
}

// WithHTTPClient troca o cliente HTTP do transport padrão.
func WithHTTPClient(client api.HTTPDoer) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTransport substitui o transport inteiro (ignora WithHTTPClient).
func WithTransport(transport api.Transport) Option {
	return func(o *options) { o.transport = transport }
}

// WithLogger define o logger. Sem ele vale config.Logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = &logger }
}

// WithMetrics define o provider de métricas. Sem ele vale config.Metrics.
func WithMetrics(provider metrics.Provider) Option {
	return func(o *options) { o.provider = provider }
}

// WithSessionStore compartilha o token do modo token através de store.
func WithSessionStore(store auth.Store) Option {
	return func(o *options) { o.store = store }
}

// WithClock troca o relógio usado na expiração do token e nas assinaturas.
func WithClock(clock auth.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithFanOutLimit limita as chamadas paralelas das operações agregadas.
// Zero remove o limite.
func WithFanOutLimit(limit int) Option {
	return func(o *options) { o.fanOutLimit = &limit }
}
