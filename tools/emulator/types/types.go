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
package types

// Response descreve uma resposta HTTP do emulador.
type Response struct {
	Status  int               `json:"status" yaml:"status"`
	Body    interface{}       `json:"body,omitempty" yaml:"body"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers"`
}

// StatusOr devolve o status configurado ou fallback quando zero.
func (r *Response) StatusOr(fallback int) int {
	if r == nil || r.Status == 0 {
		return fallback
	}
	return r.Status
}

// ParamMapping liga um parâmetro da requisição (path ou query) a um campo
// dos registros do dataset.
type ParamMapping struct {
	Name   string `json:"name" yaml:"name"`
	MapsTo string `json:"maps_to" yaml:"maps_to"`
}

// Field devolve o campo do dataset, que por padrão tem o nome do parâmetro.
func (p ParamMapping) Field() string {
	if p.MapsTo == "" {
		return p.Name
	}
	return p.MapsTo
}
