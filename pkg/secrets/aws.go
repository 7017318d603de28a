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
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMClient é o subconjunto do cliente SSM usado pelo Resolver.
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretsClient é o subconjunto do cliente Secrets Manager usado pelo Resolver.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// awsClients carrega a configuração da AWS (env vars, profile, IAM role)
// uma única vez por Resolver.
type awsClients struct {
	once    sync.Once
	region  string
	cfg     aws.Config
	err     error
	ssm     SSMClient
	secrets SecretsClient
}

func (a *awsClients) load(ctx context.Context) error {
	a.once.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if a.region != "" {
			opts = append(opts, config.WithRegion(a.region))
		}
		a.cfg, a.err = config.LoadDefaultConfig(ctx, opts...)
	})
	return a.err
}

func (a *awsClients) ssmClient(ctx context.Context) (SSMClient, error) {
	if a.ssm != nil {
		return a.ssm, nil
	}
	if err := a.load(ctx); err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(a.cfg), nil
}

func (a *awsClients) secretsClient(ctx context.Context) (SecretsClient, error) {
	if a.secrets != nil {
		return a.secrets, nil
	}
	if err := a.load(ctx); err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(a.cfg), nil
}
