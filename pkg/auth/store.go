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
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persiste o token de uma Session fora do processo.
type Store interface {
	Load(ctx context.Context) (token string, expiresAt time.Time, found bool, err error)
	Save(ctx context.Context, token string, expiresAt time.Time) error
	Clear(ctx context.Context) error
}

// MemoryStore é um Store em memória, útil em testes e para compartilhar
// um token entre clientes do mesmo processo.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func (m *MemoryStore) Load(_ context.Context) (string, time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.expiresAt, m.token != "", nil
}

func (m *MemoryStore) Save(_ context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.expiresAt = token, expiresAt
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.expiresAt = "", time.Time{}
	return nil
}

// RedisCmdable é o subconjunto do cliente go-redis usado pelo RedisStore.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore guarda o token em uma chave Redis com TTL igual ao tempo
// restante até a expiração.
type RedisStore struct {
	client RedisCmdable
	key    string
}

type redisEntry struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewRedisStore cria um Store sobre um cliente go-redis já configurado.
func NewRedisStore(client RedisCmdable, key string) *RedisStore {
	if key == "" {
		key = "valence:session"
	}
	return &RedisStore{client: client, key: key}
}

// NewRedisStoreFromAddr conecta em addr e cria o Store.
func NewRedisStoreFromAddr(addr, password, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return NewRedisStore(client, key)
}

func (r *RedisStore) Load(ctx context.Context) (string, time.Time, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("erro ao ler sessão do redis: %w", err)
	}

	var entry redisEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return "", time.Time{}, false, fmt.Errorf("sessão inválida no redis: %w", err)
	}
	return entry.Token, entry.ExpiresAt, entry.Token != "", nil
}

func (r *RedisStore) Save(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.Clear(ctx)
	}

	raw, err := json.Marshal(redisEntry{Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar sessão no redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("erro ao remover sessão do redis: %w", err)
	}
	return nil
}
