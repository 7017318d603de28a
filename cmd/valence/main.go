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
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/raywall/fast-valence-client/envloader"
	"github.com/raywall/fast-valence-client/pkg/config"
	"github.com/raywall/fast-valence-client/pkg/logger"
	"github.com/raywall/fast-valence-client/valence"
)

const usage = `Uso: valence <comando> [flags]

Comandos:
  versions                         versões dos produtos da API
  my-enrollments                   matrículas do usuário
  quizzes     -org ID              questionários da unidade
  classlist   -org ID              membros da turma
  enrollments -org ID              membros da turma mapeados
  auth-url    [-callback URL]      URL de login interativo

A configuração vem das variáveis VALENCE_* (ver pkg/config).`

// lookupEnv é substituído nos testes.
var lookupEnv envloader.LookupFunc = os.LookupEnv

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executa um comando e devolve o código de saída.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	cmd.SetOutput(stderr)
	version := cmd.String("version", "", "versão da API (padrão: VALENCE_API_VERSION)")
	orgUnit := cmd.String("org", "", "id da unidade organizacional")
	userID := cmd.String("user", "", "id do usuário (padrão: VALENCE_USER_ID)")
	userKey := cmd.String("key", "", "chave do usuário (padrão: VALENCE_USER_KEY)")
	callback := cmd.String("callback", "", "URL de retorno do login")
	if err := cmd.Parse(args[1:]); err != nil {
		return 2
	}

	needsOrg := map[string]bool{"quizzes": true, "classlist": true, "enrollments": true}
	if needsOrg[args[0]] && *orgUnit == "" {
		fmt.Fprintf(stderr, "Erro: flag -org é obrigatória para '%s'\n", args[0])
		return 2
	}

	cfg, err := config.Load(ctx, config.WithLookup(lookupEnv))
	if err != nil {
		fmt.Fprintf(stderr, "Erro de configuração:\n%v\n", err)
		return 1
	}

	client, err := valence.New(cfg, valence.WithLogger(logger.ConfigureWriter(cfg.Logging, stderr)))
	if err != nil {
		fmt.Fprintf(stderr, "Erro ao criar cliente: %v\n", err)
		return 1
	}
	defer client.Close()

	var result interface{}
	switch args[0] {
	case "versions":
		result, err = client.GetVersions(ctx)
	case "my-enrollments":
		result, err = client.GetUserEnrollments(ctx, *userID, *userKey)
	case "quizzes":
		result, err = client.ListQuizzes(ctx, *version, *orgUnit, *userID, *userKey)
	case "classlist":
		result, err = client.ListClassMembers(ctx, *version, *orgUnit, *userID, *userKey)
	case "enrollments":
		result, err = client.ListEnrollments(ctx, *version, *orgUnit, *userID, *userKey)
	case "auth-url":
		result, err = client.GetAuthenticationURL(*callback)
	default:
		fmt.Fprintf(stderr, "Comando desconhecido: %s\n\n%s\n", args[0], usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Erro: %v\n", err)
		return 1
	}

	if s, ok := result.(string); ok {
		fmt.Fprintln(stdout, s)
		return 0
	}
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(stderr, "Erro ao serializar resposta: %v\n", err)
		return 1
	}
	return 0
}
