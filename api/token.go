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
	"fmt"

	"github.com/raywall/fast-valence-client/json/path"
	"github.com/raywall/fast-valence-client/pkg/auth"
)

// attempt é uma tentativa de login: invalida a sessão, chama a operação
// auth assinada pelo usuário e guarda o token retornado.
func (l *LoginController) attempt(ctx context.Context, user *auth.UserContext) error {
	if l.sessions == nil {
		return fmt.Errorf("login sem sessão configurada")
	}
	session := l.sessions.For(sessionKey(user))
	session.Invalidate()

	data, err := l.sender.Send(ctx, OpAuth, Call{
		Body: map[string]interface{}{},
		User: user,
	}, URLSigner{User: user})
	if err != nil {
		return err
	}

	token := path.GetString(data, "token")
	if token == "" {
		return ErrMissingToken
	}

	session.SetFromLoginResponse(token)
	return nil
}
