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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionPool(t *testing.T) {
	t.Run("Uma sessão por usuário", func(t *testing.T) {
		pool := NewSessionPool(nil)

		u1 := pool.For("u1")
		u2 := pool.For("u2")
		u1.SetFromLoginResponse("token-u1")

		assert.True(t, u1 == pool.For("u1"))
		assert.False(t, u1 == u2)
		assert.False(t, u2.IsValid())
		assert.Equal(t, 2, pool.Len())
	})

	t.Run("Bind reaproveita a sessão informada", func(t *testing.T) {
		created := 0
		pool := NewSessionPool(func(string) *Session {
			created++
			return NewSession()
		})
		restored := NewSession()
		restored.SetFromLoginResponse("restored")

		pool.Bind("u1", restored)

		assert.True(t, restored == pool.For("u1"))
		assert.Equal(t, 0, created)
		pool.For("u2")
		assert.Equal(t, 1, created)
	})

	t.Run("Acesso concorrente cria uma única sessão", func(t *testing.T) {
		pool := NewSessionPool(nil)
		var wg sync.WaitGroup
		got := make([]*Session, 20)
		for i := range got {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got[i] = pool.For("same")
			}()
		}
		wg.Wait()

		for _, s := range got {
			assert.True(t, s == got[0])
		}
		assert.Equal(t, 1, pool.Len())
	})
}
