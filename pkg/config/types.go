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

import "time"

const (
	// ModeSigned assina cada URL com as chaves do usuário (sem credencial renovável).
	ModeSigned = "signed"
	// ModeToken usa um bearer token renovável obtido no endpoint de auth.
	ModeToken = "token"
)

// ClientConfig é a configuração imutável de um cliente Valence.
type ClientConfig struct {
	AppID          string        `yaml:"app_id" env:"VALENCE_APP_ID" validate:"required"`
	AppKey         string        `yaml:"app_key" env:"VALENCE_APP_KEY" validate:"required"`
	Host           string        `yaml:"host" env:"VALENCE_HOST" validate:"required"`
	Port           int           `yaml:"port" env:"VALENCE_PORT" envDefault:"443" validate:"gte=0,lte=65535"`
	UserID         string        `yaml:"user_id" env:"VALENCE_USER_ID"`
	UserKey        string        `yaml:"user_key" env:"VALENCE_USER_KEY"`
	CallbackURL    string        `yaml:"callback_url" env:"VALENCE_CALLBACK_URL" validate:"omitempty,url"`
	Mode           string        `yaml:"mode" env:"VALENCE_MODE" envDefault:"signed" validate:"oneof=signed token"`
	DefaultVersion string        `yaml:"default_version" env:"VALENCE_API_VERSION" envDefault:"1.0" validate:"required"`
	Timeout        time.Duration `yaml:"timeout" env:"VALENCE_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	FanOutLimit    int           `yaml:"fanout_limit" env:"VALENCE_FANOUT_LIMIT" envDefault:"8" validate:"gte=0"`
	// EnrollmentMap aponta um YAML de campos que estende ou substitui o
	// mapeamento padrão de ListEnrollments. Aceita path ou expr (CEL).
	EnrollmentMap  string        `yaml:"enrollment_map" env:"VALENCE_ENROLLMENT_MAP" validate:"omitempty,file"`
	Logging        LoggingConf   `yaml:"logging"`
	Metrics        MetricsConf   `yaml:"metrics"`
	Session        SessionConf   `yaml:"session"`
}

// LoggingConf define nível e formato do zerolog.
type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE"`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}

// SessionConf habilita o compartilhamento do token via Redis.
type SessionConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"VALENCE_REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword string `yaml:"redis_password" env:"VALENCE_REDIS_PASSWORD"`
	RedisKey      string `yaml:"redis_key" env:"VALENCE_REDIS_KEY" envDefault:"valence:session"`
}

// TokenMode informa se o cliente usa credencial renovável.
func (c ClientConfig) TokenMode() bool {
	return c.Mode == ModeToken
}
