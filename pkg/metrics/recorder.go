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
package metrics

import (
	"fmt"
)

// Recorder traduz eventos do cliente em chamadas ao Provider.
// Um *Recorder nil é válido e descarta tudo.
type Recorder struct {
	definitions map[string]MetricDefinition
	provider    Provider
}

// NewRecorder cria um recorder linkando IDs de eventos aos seus tipos reais.
// Quando definitions é nil, usa DefaultDefinitions.
func NewRecorder(provider Provider, definitions map[string]MetricDefinition) *Recorder {
	if definitions == nil {
		definitions = DefaultDefinitions()
	}
	return &Recorder{
		definitions: definitions,
		provider:    provider,
	}
}

// Record envia value para a métrica associada ao evento.
// Tags seguem o formato "chave:valor" do statsd.
func (r *Recorder) Record(event string, value float64, tags ...string) error {
	if r == nil || r.provider == nil {
		return nil
	}

	def, exists := r.definitions[event]
	if !exists {
		return fmt.Errorf("métrica não definida: %s", event)
	}

	switch def.Type {
	case TypeCount:
		return r.provider.Count(def.Name, value, tags)
	case TypeGauge:
		return r.provider.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return r.provider.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}

// Incr é um atalho para Record(event, 1, tags...).
func (r *Recorder) Incr(event string, tags ...string) error {
	return r.Record(event, 1, tags...)
}
