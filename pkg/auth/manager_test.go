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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock permite avançar o tempo manualmente
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSession_IsValid(t *testing.T) {
	t.Run("Sessão nova não é válida", func(t *testing.T) {
		s := NewSession()
		assert.False(t, s.IsValid())
	})

	t.Run("Válida logo após o login", func(t *testing.T) {
		clock := newFakeClock()
		s := NewSession(WithClock(clock.Now))

		s.SetFromLoginResponse("token-1")

		assert.True(t, s.IsValid())
		token, ok := s.Token()
		assert.True(t, ok)
		assert.Equal(t, "token-1", token)
		assert.Equal(t, clock.Now().Add(TokenTTL), s.ExpiresAt())
	})

	t.Run("Expira após 60 minutos", func(t *testing.T) {
		clock := newFakeClock()
		s := NewSession(WithClock(clock.Now))
		s.SetFromLoginResponse("token-1")

		clock.Advance(59 * time.Minute)
		assert.True(t, s.IsValid())

		// expiração exatamente igual ao agora não é "estritamente no futuro"
		clock.Advance(time.Minute)
		assert.False(t, s.IsValid())

		clock.Advance(time.Second)
		assert.False(t, s.IsValid())
	})

	t.Run("Invalidate limpa independente do relógio", func(t *testing.T) {
		clock := newFakeClock()
		s := NewSession(WithClock(clock.Now))
		s.SetFromLoginResponse("token-1")

		s.Invalidate()

		assert.False(t, s.IsValid())
		token, ok := s.Token()
		assert.False(t, ok)
		assert.Empty(t, token)
		assert.True(t, s.ExpiresAt().IsZero())
	})

	t.Run("Novo login substitui o token", func(t *testing.T) {
		s := NewSession()
		s.SetFromLoginResponse("token-1")
		s.SetFromLoginResponse("token-2")

		token, ok := s.Token()
		assert.True(t, ok)
		assert.Equal(t, "token-2", token)
	})
}

func TestSession_Store(t *testing.T) {
	clock := newFakeClock()
	store := &MemoryStore{}

	first := NewSession(WithClock(clock.Now), WithStore(store))
	first.SetFromLoginResponse("shared-token")

	second := NewSession(WithClock(clock.Now), WithStore(store))
	ok, err := second.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	token, valid := second.Token()
	assert.True(t, valid)
	assert.Equal(t, "shared-token", token)

	t.Run("Não restaura token expirado", func(t *testing.T) {
		clock.Advance(2 * TokenTTL)
		third := NewSession(WithClock(clock.Now), WithStore(store))
		ok, err := third.Restore(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, third.IsValid())
	})

	t.Run("Invalidate limpa o store", func(t *testing.T) {
		first.Invalidate()
		_, _, found, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSession_RestoreWithoutStore(t *testing.T) {
	ok, err := NewSession().Restore(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetFromLoginResponse("t")
		}()
		go func() {
			defer wg.Done()
			_ = s.IsValid()
		}()
	}
	wg.Wait()
	assert.True(t, s.IsValid())
}
