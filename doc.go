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
// Package fastvalence reúne um cliente Go para a Valence API do D2L
// Brightspace e a infraestrutura usada por ele.
//
// Sub-Pacotes Principais:
//
// 1. valence:
//   - Client com as operações de alto nível (versões, matrículas, questionários,
//     lista de turma, criação de matrícula e URL de login).
//   - ListEnrollments busca a turma, os detalhes de cada membro em paralelo e
//     devolve registros no formato fixo de matrícula.
//
// 2. api:
//   - Tabela de endpoints, montagem de URLs e transport HTTP.
//   - Dispatcher com os modos "signed" (URL assinada por chamada) e "token"
//     (bearer renovável com login, retry e reenvio único).
//   - FanOut genérico para chamadas concorrentes ordenadas.
//
// 3. pkg/auth:
//   - Assinatura ID-key (x_a, x_b, x_c, x_d, x_t) e sessão do modo token,
//     com store opcional em Redis.
//
// 4. pkg/mapper e pkg/rules:
//   - FieldMap por path, função derivada ou expressão CEL.
//
// 5. envloader, pkg/config e pkg/secrets:
//   - Configuração por variáveis de ambiente com tags "env" e "envDefault",
//     validação e referências ssm:// e secretsmanager://.
//
// 6. tools/emulator:
//   - Backend mock configurável com o cenário Valence embutido.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/raywall/fast-valence-client/pkg/config"
//		"github.com/raywall/fast-valence-client/valence"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		cfg, err := config.Load(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		client, err := valence.New(cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Close()
//
//		records, err := client.ListEnrollments(ctx, "1.0", "6630", "", "")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(len(records), "matrículas")
//	}
package fastvalence
