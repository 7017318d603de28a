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
// Package api é o núcleo de transporte do cliente Valence: tabela de
// operações, montagem de URL, assinatura, envio e renovação de credencial.
//
// Visão Geral:
// Cada operação pública do cliente é despachada pelo nome (ex: "quizzes").
// O Dispatcher busca o Endpoint na tabela embutida (endpoints.yaml), monta
// a URL com BuildURL, cria uma Request nova com X-Correlation-Id, aplica o
// Signer do modo configurado e entrega ao Transport.
//
// Modos:
//   - ModeSigned: cada URL recebe a assinatura ID-key do usuário (x_a..x_t).
//     Não há credencial renovável e nenhum login é feito.
//   - ModeToken: as chamadas levam um bearer token obtido na operação "auth".
//     Sessão inválida faz login antes do envio; falha com sessão válida faz
//     um novo login e exatamente um reenvio.
//
// O login (LoginController) faz até LoginAttemptLimit tentativas sem espera
// e agrupa chamadas concorrentes do mesmo usuário em um único login.
//
// Exemplo:
//
//	d := api.NewDispatcher(baseURL, api.NewHTTPTransport(nil),
//		api.WithDefaultUser(app.UserContext(userID, userKey)))
//
//	data, err := d.Dispatch(ctx, api.OpQuizzes, api.Call{
//		PathParams: map[string]string{"version": "1.0", "orgUnitId": "6606"},
//	})
//	if code := api.StatusCode(err); code == http.StatusForbidden {
//		// sem permissão
//	}
//
// FanOut executa chamadas independentes em paralelo mantendo a ordem dos
// resultados.
package api
