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

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus ou Logging sem alterar o dispatcher.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// MetricType define os tipos suportados.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition armazena os metadados da métrica (nome real, tipo).
type MetricDefinition struct {
	Name string
	Type MetricType
}

// Eventos emitidos pelo cliente.
const (
	EventRequest        = "request"
	EventRequestLatency = "request_latency"
	EventLoginAttempt   = "login_attempt"
	EventLoginFailure   = "login_failure"
	EventFanOut         = "fan_out"
)

// DefaultDefinitions liga cada evento ao nome publicado no provider.
func DefaultDefinitions() map[string]MetricDefinition {
	return map[string]MetricDefinition{
		EventRequest:        {Name: "valence.request", Type: TypeCount},
		EventRequestLatency: {Name: "valence.request.latency_ms", Type: TypeHistogram},
		EventLoginAttempt:   {Name: "valence.login.attempt", Type: TypeCount},
		EventLoginFailure:   {Name: "valence.login.failure", Type: TypeCount},
		EventFanOut:         {Name: "valence.fanout.size", Type: TypeGauge},
	}
}
