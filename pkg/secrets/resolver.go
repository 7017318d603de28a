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
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const (
	// SchemeSSM referencia um parâmetro do Parameter Store: ssm:///valence/app-key
	SchemeSSM = "ssm://"
	// SchemeSecretsManager referencia um segredo, opcionalmente uma chave
	// de um segredo JSON: secretsmanager://valence/credentials#app_key
	SchemeSecretsManager = "secretsmanager://"
)

// ErrInvalidReference indica uma referência sem identificador.
var ErrInvalidReference = errors.New("referência de segredo inválida")

// Resolver traduz referências ssm:// e secretsmanager:// em valores.
type Resolver struct {
	clients *awsClients
}

// Option configura o Resolver.
type Option func(*Resolver)

// WithRegion fixa a região AWS. Sem ela vale AWS_REGION/profile.
func WithRegion(region string) Option {
	return func(r *Resolver) { r.clients.region = region }
}

// WithSSMClient injeta um cliente SSM (ex: mock em testes).
func WithSSMClient(client SSMClient) Option {
	return func(r *Resolver) { r.clients.ssm = client }
}

// WithSecretsClient injeta um cliente Secrets Manager.
func WithSecretsClient(client SecretsClient) Option {
	return func(r *Resolver) { r.clients.secrets = client }
}

// NewResolver cria o Resolver. Os clientes reais só são criados na
// primeira referência resolvida.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{clients: &awsClients{region: os.Getenv("AWS_REGION")}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsReference informa se value usa um dos esquemas suportados.
func IsReference(value string) bool {
	return strings.HasPrefix(value, SchemeSSM) || strings.HasPrefix(value, SchemeSecretsManager)
}

// Resolve devolve o valor referenciado. Valores que não são referências
// retornam inalterados.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	switch {
	case strings.HasPrefix(value, SchemeSSM):
		return r.parameter(ctx, strings.TrimPrefix(value, SchemeSSM))
	case strings.HasPrefix(value, SchemeSecretsManager):
		id, key, _ := strings.Cut(strings.TrimPrefix(value, SchemeSecretsManager), "#")
		return r.secret(ctx, id, key)
	default:
		return value, nil
	}
}

func (r *Resolver) parameter(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidReference, SchemeSSM)
	}

	client, err := r.clients.ssmClient(ctx)
	if err != nil {
		return "", fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	decrypt := true
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &decrypt,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter (%s): %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro %s sem valor", name)
	}
	return *out.Parameter.Value, nil
}

func (r *Resolver) secret(ctx context.Context, id, key string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidReference, SchemeSecretsManager)
	}

	client, err := r.clients.secretsClient(ctx)
	if err != nil {
		return "", fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &id,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager (%s): %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", id)
	}

	val := *out.SecretString
	if key == "" {
		return val, nil
	}

	// segredo JSON: extrai a chave pedida
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("segredo %s não é JSON: %w", id, err)
	}
	field, ok := data[key]
	if !ok {
		return "", fmt.Errorf("chave %q não encontrada no segredo %s", key, id)
	}
	if s, ok := field.(string); ok {
		return s, nil
	}
	return fmt.Sprint(field), nil
}
