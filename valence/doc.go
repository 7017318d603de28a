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
// Package valence é o cliente de alto nível da Valence API.
//
// New recebe um config.ClientConfig (normalmente vindo de config.Load) e
// monta logger, métricas, transport e, no modo token, a sessão com store
// opcional em Redis. As operações aceitam userID e userKey por chamada;
// valores vazios usam os da configuração.
package valence
