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
	_ "embed"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Nomes das operações presentes na tabela padrão.
const (
	OpVersions         = "versions"
	OpAuth             = "auth"
	OpMyEnrollments    = "myEnrollments"
	OpQuizzes          = "quizzes"
	OpClasslist        = "classlist"
	OpUser             = "user"
	OpCreateEnrollment = "createEnrollment"
)

//go:embed endpoints.yaml
var defaultEndpointsYAML []byte

// Endpoint descreve uma operação remota: verbo HTTP e template do path.
type Endpoint struct {
	Name   string `yaml:"-"`
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

// Endpoints é a tabela somente-leitura de operações, indexada pelo nome.
type Endpoints map[string]Endpoint

// Lookup busca uma operação pelo nome.
func (e Endpoints) Lookup(name string) (Endpoint, error) {
	endpoint, ok := e[name]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return endpoint, nil
}

// LoadEndpoints decodifica uma tabela de endpoints em YAML.
//
// Formato esperado:
//
//	endpoints:
//	  versions:
//	    method: GET
//	    path: /d2l/api/versions/
func LoadEndpoints(data []byte) (Endpoints, error) {
	var doc struct {
		Endpoints map[string]Endpoint `yaml:"endpoints"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("erro ao parsear tabela de endpoints: %w", err)
	}

	table := make(Endpoints, len(doc.Endpoints))
	for name, endpoint := range doc.Endpoints {
		method := strings.ToUpper(strings.TrimSpace(endpoint.Method))
		if method == "" {
			method = http.MethodGet
		}
		if endpoint.Path == "" {
			return nil, fmt.Errorf("endpoint '%s' sem path", name)
		}
		table[name] = Endpoint{Name: name, Method: method, Path: endpoint.Path}
	}

	return table, nil
}

var (
	defaultEndpoints     Endpoints
	defaultEndpointsOnce sync.Once
)

// DefaultEndpoints retorna uma cópia da tabela embutida da Valence API,
// decodificada uma única vez. Uma tabela embutida inválida causa pânico.
func DefaultEndpoints() Endpoints {
	defaultEndpointsOnce.Do(func() {
		table, err := LoadEndpoints(defaultEndpointsYAML)
		if err != nil {
			panic(err)
		}
		defaultEndpoints = table
	})
	return maps.Clone(defaultEndpoints)
}
