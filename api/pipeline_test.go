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
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut_PreservesOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}

	results, err := FanOut(context.Background(), items, 0, func(ctx context.Context, n int) (string, error) {
		// itens maiores terminam por último
		time.Sleep(time.Duration(n) * time.Millisecond)
		return string(rune('a' + n)), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, results)
}

func TestFanOut_Empty(t *testing.T) {
	results, err := FanOut(context.Background(), []string{}, 0, func(ctx context.Context, s string) (int, error) {
		t.Fatal("não deveria ser chamado")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFanOut_FirstErrorCancels(t *testing.T) {
	boom := errors.New("boom")

	results, err := FanOut(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Second):
			return n, nil
		}
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results, "sem resultados parciais")
}

func TestFanOut_Limit(t *testing.T) {
	var running, peak atomic.Int32

	_, err := FanOut(context.Background(), make([]int, 20), 3, func(ctx context.Context, _ int) (int, error) {
		now := running.Add(1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return 0, nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}
