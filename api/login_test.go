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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raywall/fast-valence-client/pkg/auth"
	"github.com/raywall/fast-valence-client/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginFixture(handler func(req *Request) (interface{}, error)) (*LoginController, *auth.Session, *fakeTransport, *countingProvider) {
	transport := &fakeTransport{handler: handler}
	sessions := auth.NewSessionPool(nil)
	session := sessions.For(testUser().UserID)
	provider := newCountingProvider()
	d := NewDispatcher("https://lms.example.com", transport, WithDefaultUser(testUser()))
	controller := NewLoginController(sessions, d, zerolog.Nop(), metrics.NewRecorder(provider, nil))
	return controller, session, transport, provider
}

func TestLoginWithRetry_SucceedsOnFifthAttempt(t *testing.T) {
	calls := 0
	controller, session, transport, provider := newLoginFixture(func(req *Request) (interface{}, error) {
		calls++
		if calls < 5 {
			return nil, &HTTPError{Code: 503}
		}
		return loginOK("fifth")
	})

	err := controller.LoginWithRetry(context.Background(), testUser())
	require.NoError(t, err)

	assert.Equal(t, 5, transport.count(OpAuth))
	token, ok := session.Token()
	assert.True(t, ok)
	assert.Equal(t, "fifth", token)
	assert.Equal(t, float64(5), provider.get("valence.login.attempt"))
	assert.Equal(t, float64(4), provider.get("valence.login.failure"))
}

func TestLoginWithRetry_StopsOnFirstSuccess(t *testing.T) {
	controller, _, transport, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		return loginOK("first")
	})

	require.NoError(t, controller.LoginWithRetry(context.Background(), testUser()))
	assert.Equal(t, 1, transport.count(OpAuth))
	assert.Equal(t, "POST", transport.requests[0].Method)
}

func TestLoginWithRetry_Exhausted(t *testing.T) {
	calls := 0
	controller, session, transport, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		calls++
		return nil, &HTTPError{Code: 500 + calls}
	})

	err := controller.LoginWithRetry(context.Background(), testUser())

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, LoginAttemptLimit, authErr.Attempts)
	assert.Equal(t, LoginAttemptLimit, transport.count(OpAuth))
	assert.Equal(t, 505, StatusCode(err), "erro da última tentativa")
	assert.False(t, session.IsValid())
}

func TestLoginWithRetry_MissingToken(t *testing.T) {
	controller, session, _, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		return map[string]interface{}{"token": ""}, nil
	})

	err := controller.LoginWithRetry(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.False(t, session.IsValid())
}

func TestLoginWithRetry_InvalidatesBeforeAttempt(t *testing.T) {
	var validDuringLogin atomic.Bool
	var session *auth.Session
	controller, s, _, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		validDuringLogin.Store(session.IsValid())
		return loginOK("new")
	})
	session = s
	session.SetFromLoginResponse("old")

	require.NoError(t, controller.LoginWithRetry(context.Background(), testUser()))
	assert.False(t, validDuringLogin.Load())
}

func TestLoginWithRetry_Coalesced(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	controller, _, transport, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		return loginOK("shared")
	})

	user := testUser()
	const callers = 10
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- controller.LoginWithRetry(context.Background(), user)
		}()
	}

	<-entered
	// dá tempo para os demais chamadores entrarem no login em andamento
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, transport.count(OpAuth))
}

func TestLoginWithRetry_ContextCancelled(t *testing.T) {
	controller, _, transport, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		return nil, &HTTPError{Code: 500}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := controller.LoginWithRetry(ctx, testUser())
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, transport.count(OpAuth))
}

func TestLoginWithRetry_CancelledCallerDoesNotAbortSharedLogin(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	controller, session, transport, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		return loginOK("shared")
	})

	user := testUser()
	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() { first <- controller.LoginWithRetry(ctx, user) }()
	<-entered

	second := make(chan error, 1)
	go func() { second <- controller.LoginWithRetry(context.Background(), user) }()
	// dá tempo para o segundo chamador entrar no login em andamento
	time.Sleep(100 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	require.NoError(t, <-second)
	assert.Equal(t, 1, transport.count(OpAuth))
	assert.True(t, session.IsValid())
}

func TestLoginWithRetry_SessionPerUser(t *testing.T) {
	controller, session, _, _ := newLoginFixture(func(req *Request) (interface{}, error) {
		return loginOK("token-" + req.Path)
	})

	other := auth.NewApplicationContext("app-id", "app-key").UserContext("u2", "k2")
	require.NoError(t, controller.LoginWithRetry(context.Background(), other))

	assert.False(t, session.IsValid(), "a sessão do usuário padrão não é tocada")
	token, ok := controller.sessions.For("u2").Token()
	assert.True(t, ok)
	assert.Contains(t, token, "x_b=u2")
}
