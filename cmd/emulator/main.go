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
package main

import (
	"flag"
	"os"

	"github.com/raywall/fast-valence-client/tools/emulator/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// serverStarter é substituído nos testes para não abrir portas.
var serverStarter = func(s *config.ServerConfig) error {
	return s.Start()
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	configPath := flag.String("config", "", "Arquivo JSON/YAML com os servidores (padrão: EMULATOR_CONFIG_PATH ou cenário valence)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal().Err(err).Msg("emulador encerrado")
	}
}

// run carrega a configuração e sobe um servidor por porta. Retorna quando
// o primeiro servidor falhar.
func run(configPath string) error {
	cfg, err := load(configPath)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, server := range cfg {
		g.Go(func() error {
			return serverStarter(&server)
		})
	}
	return g.Wait()
}

func load(configPath string) (config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	var cfg config.Config
	if err := cfg.LoadFromFile(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}
