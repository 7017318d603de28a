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
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type ServerConfig struct {
	Port   int           `json:"port" yaml:"port"`
	Token  string        `json:"token,omitempty" yaml:"token"`
	Routes []RouteConfig `json:"routes" yaml:"routes"`
}

// Handler monta o roteador com todas as rotas. As rotas são avaliadas na
// ordem em que foram declaradas.
func (s *ServerConfig) Handler() http.Handler {
	router := mux.NewRouter()
	for _, route := range s.Routes {
		router.HandleFunc(route.Path, s.NewHandler(route)).Methods(route.Method)
	}
	return router
}

func (s *ServerConfig) Start() error {
	addr := fmt.Sprintf(":%d", s.Port)
	log.Info().Int("port", s.Port).Int("routes", len(s.Routes)).Msg("iniciando emulador")
	if err := http.ListenAndServe(addr, s.Handler()); err != nil {
		return fmt.Errorf("servidor na porta %d: %w", s.Port, err)
	}
	return nil
}
