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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/raywall/fast-valence-client/pkg/auth"
	"github.com/raywall/fast-valence-client/pkg/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// LoginAttemptLimit é o total de tentativas de login por renovação.
const LoginAttemptLimit = 5

// LoginController renova o token da Session de cada usuário. Chamadas
// concorrentes para o mesmo usuário compartilham um único login em andamento.
type LoginController struct {
	sessions *auth.SessionPool
	sender   Sender
	logger   zerolog.Logger
	recorder *metrics.Recorder
	group    singleflight.Group
}

// NewLoginController cria o controlador. recorder pode ser nil.
func NewLoginController(sessions *auth.SessionPool, sender Sender, logger zerolog.Logger, recorder *metrics.Recorder) *LoginController {
	return &LoginController{
		sessions: sessions,
		sender:   sender,
		logger:   logger,
		recorder: recorder,
	}
}

// LoginWithRetry tenta o login até LoginAttemptLimit vezes, sem espera entre
// tentativas. Retorna no primeiro sucesso; esgotadas as tentativas devolve
// *AuthError com a falha da última.
//
// O login compartilhado não é cancelado quando um dos chamadores desiste:
// quem cancela recebe *AuthError com ctx.Err() e os demais seguem esperando.
func (l *LoginController) LoginWithRetry(ctx context.Context, user *auth.UserContext) error {
	if err := ctx.Err(); err != nil {
		return &AuthError{Err: err}
	}

	key := "login:" + sessionKey(user)
	result := l.group.DoChan(key, func() (interface{}, error) {
		return nil, l.retry(context.WithoutCancel(ctx), user)
	})

	select {
	case res := <-result:
		if res.Shared {
			l.logger.Debug().Str("key", key).Msg("login compartilhado")
		}
		return res.Err
	case <-ctx.Done():
		return &AuthError{Err: ctx.Err()}
	}
}

func (l *LoginController) retry(ctx context.Context, user *auth.UserContext) error {
	attempts := 0
	operation := func() error {
		attempts++
		_ = l.recorder.Incr(metrics.EventLoginAttempt)
		return l.attempt(ctx, user)
	}

	notify := func(err error, _ time.Duration) {
		_ = l.recorder.Incr(metrics.EventLoginFailure)
		l.logger.Warn().Err(err).Int("attempt", attempts).Msg("tentativa de login falhou")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, LoginAttemptLimit-1),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		_ = l.recorder.Incr(metrics.EventLoginFailure)
		l.logger.Error().Err(err).Int("attempts", attempts).Msg("login esgotou as tentativas")
		return &AuthError{Attempts: attempts, Err: err}
	}

	l.logger.Debug().Int("attempts", attempts).Msg("login concluído")
	return nil
}
