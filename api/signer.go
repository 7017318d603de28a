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
	"fmt"

	"github.com/raywall/fast-valence-client/pkg/auth"
)

// Signer aplica a credencial a uma Request antes do envio.
type Signer interface {
	Sign(req *Request) error
}

// SignerFunc adapta uma função a Signer.
type SignerFunc func(req *Request) error

func (f SignerFunc) Sign(req *Request) error { return f(req) }

// URLSigner assina o path com o esquema ID-key (x_a..x_t) do usuário.
type URLSigner struct {
	User *auth.UserContext
}

func (s URLSigner) Sign(req *Request) error {
	if s.User == nil {
		return fmt.Errorf("operação '%s' sem contexto de usuário para assinar", req.Operation)
	}
	req.Path = s.User.SignURL(req.Method, req.Path)
	return nil
}

// BearerSigner envia o token da sessão no header Authorization.
type BearerSigner struct {
	Session *auth.Session
}

func (s BearerSigner) Sign(req *Request) error {
	if s.Session == nil {
		return ErrMissingToken
	}
	token, ok := s.Session.Token()
	if !ok {
		return ErrMissingToken
	}
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	req.Headers["Authorization"] = "Bearer " + token
	return nil
}
