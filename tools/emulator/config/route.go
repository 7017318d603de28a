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
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/raywall/fast-valence-client/tools/emulator/types"
	"github.com/rs/zerolog/log"
)

// RouteConfig descreve uma rota. Response sozinho gera uma resposta
// estática; Data com PathParams/QueryParams filtra registros em memória.
type RouteConfig struct {
	Path              string               `json:"path" yaml:"path"`
	Method            string               `json:"method" yaml:"method"`
	Response          *types.Response      `json:"response,omitempty" yaml:"response"`
	Data              []interface{}        `json:"data,omitempty" yaml:"data"`
	QueryParams       []types.ParamMapping `json:"query_params,omitempty" yaml:"query_params"`
	PathParams        []types.ParamMapping `json:"path_params,omitempty" yaml:"path_params"`
	ResponseOnMatch   *types.Response      `json:"response_on_match,omitempty" yaml:"response_on_match"`
	ResponseOnNoMatch *types.Response      `json:"response_on_no_match,omitempty" yaml:"response_on_no_match"`

	// RequireAuth exige uma URL assinada (x_a..x_t) ou o Bearer do servidor.
	RequireAuth bool `json:"require_auth,omitempty" yaml:"require_auth"`
	// AlwaysList devolve lista mesmo quando só um registro casa.
	AlwaysList  bool `json:"always_list,omitempty" yaml:"always_list"`
	// EchoBody responde com o corpo JSON recebido.
	EchoBody    bool `json:"echo_body,omitempty" yaml:"echo_body"`
	// DelayMs atrasa a resposta, respeitando o cancelamento do cliente.
	DelayMs     int  `json:"delay_ms,omitempty" yaml:"delay_ms"`
}

func (s *ServerConfig) NewHandler(route RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if route.DelayMs > 0 {
			select {
			case <-time.After(time.Duration(route.DelayMs) * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}

		if route.RequireAuth && !s.authorized(r) {
			sendResponse(w, http.StatusForbidden, map[string]string{"Errors": "Not authorized"}, nil)
			return
		}

		if route.EchoBody {
			echo(w, r, route.Response)
			return
		}

		// Resposta estática (sem data/params)
		if route.Response != nil && len(route.Data) == 0 && len(route.QueryParams) == 0 && len(route.PathParams) == 0 {
			sendResponse(w, route.Response.StatusOr(http.StatusOK), route.Response.Body, route.Response.Headers)
			return
		}

		matches := filter(route, r)
		if len(matches) == 0 {
			resp := route.ResponseOnNoMatch
			if resp == nil {
				resp = &types.Response{Status: http.StatusNotFound, Body: map[string]string{"error": "Not found"}}
			}
			sendResponse(w, resp.StatusOr(http.StatusNotFound), resp.Body, resp.Headers)
			return
		}

		var body interface{} = matches
		if len(matches) == 1 && !route.AlwaysList {
			body = matches[0]
		}
		sendResponse(w, route.ResponseOnMatch.StatusOr(http.StatusOK), body, nil)
	}
}

// filter devolve os registros de route.Data cujos campos casam com os
// parâmetros de path e query mapeados.
func filter(route RouteConfig, r *http.Request) []interface{} {
	params := make(map[string]string)

	vars := mux.Vars(r)
	for _, p := range route.PathParams {
		if value, ok := vars[p.Name]; ok {
			params[p.Field()] = value
		}
	}

	query := r.URL.Query()
	for _, p := range route.QueryParams {
		if value := query.Get(p.Name); value != "" {
			params[p.Field()] = value
		}
	}

	matches := make([]interface{}, 0)
	for _, item := range route.Data {
		itemMap, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		match := true
		for field, value := range params {
			itemValue, exists := itemMap[field]
			if !exists || !valuesMatch(itemValue, value) {
				match = false
				break
			}
		}
		if match {
			matches = append(matches, item)
		}
	}
	return matches
}

// authorized aceita o esquema ID-key (presença dos parâmetros de assinatura)
// ou o token Bearer emitido pelo próprio servidor.
func (s *ServerConfig) authorized(r *http.Request) bool {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		return ok && s.Token != "" && token == s.Token
	}

	query := r.URL.Query()
	for _, key := range []string{"x_a", "x_b", "x_c", "x_d", "x_t"} {
		if query.Get(key) == "" {
			return false
		}
	}
	return true
}

func echo(w http.ResponseWriter, r *http.Request, resp *types.Response) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		sendResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()}, nil)
		return
	}

	var body interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			sendResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid json"}, nil)
			return
		}
	}
	sendResponse(w, resp.StatusOr(http.StatusOK), body, nil)
}

func sendResponse(w http.ResponseWriter, status int, body interface{}, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("erro ao codificar resposta")
		}
	}
}

func valuesMatch(a interface{}, b string) bool {
	switch v := a.(type) {
	case string:
		return v == b
	case float64:
		f, err := strconv.ParseFloat(b, 64)
		return err == nil && v == f
	case int:
		i, err := strconv.Atoi(b)
		return err == nil && v == i
	case json.Number:
		return v.String() == b
	case bool:
		return strings.ToLower(b) == fmt.Sprintf("%v", v)
	default:
		return false
	}
}
