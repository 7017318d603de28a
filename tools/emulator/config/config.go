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
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config agrupa um ServerConfig por porta.
type Config []ServerConfig

//go:embed valence.json
var valenceFixture []byte

// Valence devolve o cenário embutido que imita um tenant Brightspace:
// versões, login, lista de turma, detalhes de usuário, questionários e
// criação de matrícula.
func Valence() (ServerConfig, error) {
	var server ServerConfig
	if err := json.Unmarshal(valenceFixture, &server); err != nil {
		return ServerConfig{}, fmt.Errorf("erro ao parsear cenário valence: %w", err)
	}
	return server, nil
}

// Load carrega a configuração de EMULATOR_CONFIG_PATH (ou emulator.json).
// Sem arquivo, sobe apenas o cenário Valence embutido.
func Load() (Config, error) {
	path := os.Getenv("EMULATOR_CONFIG_PATH")
	if path == "" {
		path = "emulator.json"
	}

	cfg := make(Config, 0)
	err := cfg.LoadFromFile(path)
	if err == nil {
		return cfg, nil
	}

	log.Warn().Err(err).Str("path", path).Msg("usando cenário valence embutido")
	server, ferr := Valence()
	if ferr != nil {
		return nil, ferr
	}
	return Config{server}, nil
}

// LoadFromFile lê JSON ou, pela extensão .yaml/.yml, YAML.
func (cfg *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("erro ao parsear %s: %w", path, err)
	}
	return nil
}
