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
package mapper

import (
	"fmt"

	"github.com/raywall/fast-valence-client/pkg/rules"
	"gopkg.in/yaml.v3"
)

// fieldSpec é uma entrada YAML: um escalar (atalho para path), {path: ...}
// ou uma regra {expr: ..., when: ..., else: ...}.
type fieldSpec struct {
	Path       string `yaml:"path"`
	rules.Rule `yaml:",inline"`
}

func (s *fieldSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Path = value.Value
		return nil
	}

	type plain fieldSpec
	return value.Decode((*plain)(s))
}

// LoadFieldMap lê um FieldMap em YAML. Expressões são compiladas por rm,
// então erros de sintaxe aparecem aqui.
//
//	courseId: OrgUnitId
//	email:
//	  path: ExternalEmail
//	fullName:
//	  expr: record.FirstName + ' ' + record.LastName
func LoadFieldMap(data []byte, rm *rules.RuleManager) (FieldMap, error) {
	var specs map[string]fieldSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("erro ao decodificar field map: %w", err)
	}

	fm := make(FieldMap, len(specs))
	for key, spec := range specs {
		switch {
		case spec.Path != "" && spec.Value != "":
			return nil, fmt.Errorf("campo '%s': use 'path' ou 'expr', não ambos", key)
		case spec.Path != "":
			fm[key] = Path(spec.Path)
		case spec.Value != "":
			if rm == nil {
				return nil, fmt.Errorf("campo '%s': expressão sem RuleManager", key)
			}
			if spec.Name == "" {
				spec.Name = key
			}
			compiled, err := rm.CompileRule(spec.Rule)
			if err != nil {
				return nil, fmt.Errorf("campo '%s': %w", key, err)
			}
			fm[key] = Expr(compiled)
		default:
			return nil, fmt.Errorf("campo '%s': 'path' ou 'expr' é obrigatório", key)
		}
	}
	return fm, nil
}
