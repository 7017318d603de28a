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
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TokenTTL é a validade fixa atribuída a cada token recebido no login.
// TTLs informados pelo servidor são ignorados.
const TokenTTL = 60 * time.Minute

// storeTimeout limita operações write-through no Store.
const storeTimeout = 2 * time.Second

// Clock devolve o instante atual; injetável para testes.
type Clock func() time.Time

// Session guarda a credencial renovável (bearer token + expiração) de uma
// instância de cliente. É segura para uso concorrente.
//
// Estados possíveis: sem token, válido (expiração estritamente no futuro)
// ou expirado.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	now    Clock
	store  Store
	logger zerolog.Logger
}

// SessionOption configura uma Session.
type SessionOption func(*Session)

// WithClock substitui o relógio usado para calcular e checar expiração.
func WithClock(clock Clock) SessionOption {
	return func(s *Session) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithStore habilita persistência write-through do token (ex: Redis),
// permitindo que vários processos compartilhem a mesma sessão.
func WithStore(store Store) SessionOption {
	return func(s *Session) {
		s.store = store
	}
}

// WithLogger define o logger usado para reportar falhas do Store.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession cria uma sessão vazia (sem credencial).
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsValid retorna false quando não há token ou quando a expiração
// registrada não está estritamente no futuro.
func (s *Session) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || s.expiresAt.IsZero() {
		return false
	}
	return s.expiresAt.After(s.now())
}

// Token retorna o token atual e se ele ainda é válido.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || !s.expiresAt.After(s.now()) {
		return s.token, false
	}
	return s.token, true
}

// ExpiresAt retorna a expiração registrada (zero quando não há token).
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// SetFromLoginResponse guarda o token e define expiração = agora + TokenTTL.
func (s *Session) SetFromLoginResponse(token string) {
	s.mu.Lock()
	s.token = token
	s.expiresAt = s.now().Add(TokenTTL)
	expiresAt := s.expiresAt
	s.mu.Unlock()

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.store.Save(ctx, token, expiresAt); err != nil {
			s.logger.Warn().Err(err).Msg("falha ao persistir token no store")
		}
	}
}

// Invalidate descarta o token incondicionalmente.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("falha ao limpar token no store")
		}
	}
}

// Restore carrega do Store um token ainda válido, se houver.
// Retorna true quando a sessão ficou válida.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}

	token, expiresAt, found, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if !found || token == "" || !expiresAt.After(s.now()) {
		return false, nil
	}

	s.mu.Lock()
	s.token = token
	s.expiresAt = expiresAt
	s.mu.Unlock()

	return true, nil
}
