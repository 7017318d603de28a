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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CorrelationHeader carrega o id de correlação de cada tentativa.
const CorrelationHeader = "X-Correlation-Id"

const userAgent = "FastValenceClient/1.0"

// Request é o contexto de uma única tentativa de envio. Nunca é reutilizado.
type Request struct {
	Operation     string
	Method        string
	BaseURL       string
	Path          string
	Headers       map[string]string
	Body          interface{}
	CorrelationID string
}

// URL devolve a URL absoluta da requisição.
func (r *Request) URL() string {
	return strings.TrimRight(r.BaseURL, "/") + r.Path
}

// Transport executa uma Request e devolve o JSON decodificado.
type Transport interface {
	Do(ctx context.Context, req *Request) (interface{}, error)
}

// HTTPDoer é satisfeito por *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTransport é o Transport padrão sobre net/http.
type HTTPTransport struct {
	client HTTPDoer
}

// NewHTTPTransport cria o transport. Com client nil usa um *http.Client
// com timeout de 30s.
func NewHTTPTransport(client HTTPDoer) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{client: client}
}

// Do envia a requisição. Respostas não-2xx viram *HTTPError; corpos JSON
// são decodificados com UseNumber para preservar ids numéricos longos.
func (t *HTTPTransport) Do(ctx context.Context, r *Request) (interface{}, error) {
	var body io.Reader
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar corpo de '%s': %w", r.Operation, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(r.Method), r.URL(), body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar request '%s': %w", r.Operation, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.CorrelationID != "" {
		req.Header.Set(CorrelationHeader, r.CorrelationID)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha na conexão com %s %s: %w", req.Method, redact(r.Path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta de '%s': %w", r.Operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Code:   resp.StatusCode,
			Method: req.Method,
			URL:    redact(r.Path),
			Body:   respBody,
		}
	}

	return decode(respBody), nil
}

// decode devolve o JSON decodificado, nil para corpo vazio, ou o texto
// bruto quando o corpo não é JSON.
func decode(raw []byte) interface{} {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return string(raw)
	}
	return data
}

// redact remove a query string (que carrega as assinaturas) de mensagens
// de erro e logs.
func redact(path string) string {
	if i := strings.Index(path, "?"); i >= 0 {
		return path[:i]
	}
	return path
}
