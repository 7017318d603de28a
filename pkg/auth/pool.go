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

import "sync"

// SessionPool mantém uma Session por usuário. No modo token cada usuário
// autentica e envia apenas com o próprio token.
type SessionPool struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  func(userID string) *Session
}

// NewSessionPool cria o pool. factory cria a sessão de um usuário ainda
// desconhecido; nil usa NewSession().
func NewSessionPool(factory func(userID string) *Session) *SessionPool {
	if factory == nil {
		factory = func(string) *Session { return NewSession() }
	}
	return &SessionPool{
		sessions: make(map[string]*Session),
		factory:  factory,
	}
}

// Bind associa uma sessão existente (ex: restaurada do store) ao usuário.
func (p *SessionPool) Bind(userID string, session *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[userID] = session
}

// For devolve a sessão do usuário, criando-a na primeira chamada.
func (p *SessionPool) For(userID string) *Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[userID]
	if !ok {
		session = p.factory(userID)
		p.sessions[userID] = session
	}
	return session
}

// Len informa quantos usuários já têm sessão.
func (p *SessionPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}
