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
	"context"
	"fmt"

	"github.com/raywall/fast-valence-client/envloader"
	"github.com/raywall/fast-valence-client/pkg/config/injector"
	"github.com/raywall/fast-valence-client/pkg/secrets"
)

// LoadOption ajusta o carregamento.
type LoadOption func(*loadOptions)

type loadOptions struct {
	lookup   envloader.LookupFunc
	resolver injector.Resolver
}

// WithLookup troca a fonte das variáveis de ambiente.
func WithLookup(lookup envloader.LookupFunc) LoadOption {
	return func(o *loadOptions) { o.lookup = lookup }
}

// WithResolver troca o resolvedor de segredos (padrão: AWS).
func WithResolver(resolver injector.Resolver) LoadOption {
	return func(o *loadOptions) { o.resolver = resolver }
}

// Load monta a ClientConfig a partir do ambiente, resolve referências
// ssm:// e secretsmanager:// e valida o resultado.
func Load(ctx context.Context, opts ...LoadOption) (ClientConfig, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = secrets.NewResolver()
	}

	var cfg ClientConfig
	if err := envloader.LoadFrom(&cfg, o.lookup); err != nil {
		return ClientConfig{}, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	if err := Resolve(ctx, &cfg, o.resolver); err != nil {
		return ClientConfig{}, err
	}

	if err := NewValidator().Validate(&cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// Resolve aplica o injector sobre uma configuração já montada.
func Resolve(ctx context.Context, cfg *ClientConfig, resolver injector.Resolver) error {
	if err := injector.New(resolver, secrets.IsReference).Inject(ctx, cfg); err != nil {
		return fmt.Errorf("erro ao resolver segredos: %w", err)
	}
	return nil
}
