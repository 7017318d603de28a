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
//
// Package envloader carrega variáveis de ambiente diretamente para campos de
// uma struct Go usando as tags `env` e `envDefault`.
//
// Tipos suportados: string, int, uint, bool, float, time.Duration e []string
// (separado por vírgula), além de structs aninhadas e ponteiros para struct.
//
// Uma variável pode ser marcada como obrigatória com a opção required:
//
//	type ClientConfig struct {
//	    AppID   string        `env:"VALENCE_APP_ID,required"`
//	    Port    int           `env:"VALENCE_PORT" envDefault:"443"`
//	    Timeout time.Duration `env:"VALENCE_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg ClientConfig
//	if err := envloader.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// LoadFrom aceita uma LookupFunc alternativa, o que permite carregar a
// configuração a partir de um mapa em testes sem alterar o ambiente do processo.
package envloader
