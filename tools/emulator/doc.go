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
//
// Package emulator fornece um servidor HTTP mock configurável via JSON ou
// YAML, usado para desenvolver e testar o cliente Valence sem depender de um
// tenant Brightspace real.
//
// Cada ServerConfig sobe em uma porta e declara rotas gorilla/mux. Uma rota
// pode devolver uma resposta estática ou filtrar um dataset em memória
// cruzando parâmetros de path e query com os campos dos registros:
//
//	{
//	  "path": "/d2l/api/lp/{version}/users/{userId}",
//	  "method": "GET",
//	  "require_auth": true,
//	  "path_params": [{"name": "userId", "maps_to": "UserId"}],
//	  "data": [{"UserId": 101, "FirstName": "Ana"}],
//	  "response_on_no_match": {"status": 404}
//	}
//
// Com um único registro encontrado a resposta é o objeto; com vários, a
// lista (ou sempre a lista, com "always_list"). "require_auth" aceita URLs
// assinadas no esquema ID-key (x_a, x_b, x_c, x_d, x_t) ou o header
// "Authorization: Bearer <token>" com o token do servidor. "echo_body"
// devolve o JSON recebido e "delay_ms" simula latência.
//
// config.Valence devolve o cenário embutido (porta 5050) com versões, login
// por token, lista de turma, detalhes de usuário, questionários (a versão
// "unstable" responde 400) e criação de matrícula. Os testes do pacote
// valence o servem via httptest:
//
//	server, _ := config.Valence()
//	ts := httptest.NewServer(server.Handler())
//	defer ts.Close()
//
// Para rodar localmente:
//
//	go run ./cmd/emulator -config emulator.yaml
//
// Sem -config o binário lê EMULATOR_CONFIG_PATH e, na falta do arquivo,
// sobe o cenário Valence.
package emulator
