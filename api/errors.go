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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOperation é retornado quando o nome da operação não existe
	// na tabela de endpoints.
	ErrUnknownOperation = errors.New("operação desconhecida")
	// ErrMissingToken é retornado quando a resposta de login não contém token.
	ErrMissingToken = errors.New("resposta de login sem token")
)

// HTTPError representa uma resposta não-2xx da API remota.
type HTTPError struct {
	// Code é o status HTTP retornado (ex: 400, 403).
	Code int
	// Method e URL identificam a requisição que falhou.
	Method string
	URL    string
	// Body é o corpo bruto da resposta, útil para depuração.
	Body []byte
}

// Error retorna uma mensagem no formato "http error 400: GET /path: corpo".
func (e *HTTPError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return fmt.Sprintf("http error %d: %s %s: %s", e.Code, e.Method, e.URL, body)
}

// StatusCode expõe o status HTTP da falha.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// ValidationError é retornado quando o payload de uma operação não passa
// na validação. A requisição nunca chega a ser enviada.
type ValidationError struct {
	// Operation é o nome da operação (ex: "createEnrollment").
	Operation string
	// Fields lista as violações no formato "Campo: regra".
	Fields []string
	// Err é o erro original do validador.
	Err error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("payload inválido para '%s': %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("payload inválido para '%s': %s", e.Operation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthError é retornado quando todas as tentativas de login falham.
type AuthError struct {
	// Attempts é o número de tentativas realizadas.
	Attempts int
	// Err é a falha da última tentativa.
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login falhou após %d tentativas: %v", e.Attempts, e.Err)
}

// Unwrap permite que errors.As alcance o HTTPError da última tentativa.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// StatusCode extrai o status HTTP de qualquer erro da cadeia, ou 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return 0
}
