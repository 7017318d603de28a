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
package rules

import "fmt"

// Rule é uma expressão com condição opcional:
// se Condition for vazia ou verdadeira avalia Value, senão ElseValue.
type Rule struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"when"`
	Value     string `yaml:"expr" validate:"required"`
	ElseValue string `yaml:"else"`
}

// Compiled é uma Rule validada contra o ambiente CEL.
type Compiled struct {
	rule Rule
	rm   *RuleManager
}

// CompileRule compila todas as expressões da regra antecipadamente para que
// erros de sintaxe apareçam no carregamento e não na primeira execução.
func (rm *RuleManager) CompileRule(rule Rule) (*Compiled, error) {
	if rule.Value == "" {
		return nil, fmt.Errorf("regra '%s' sem expressão", rule.Name)
	}
	for _, expr := range []string{rule.Condition, rule.Value, rule.ElseValue} {
		if expr == "" {
			continue
		}
		if _, err := rm.Compile(expr); err != nil {
			return nil, fmt.Errorf("regra '%s': %w", rule.Name, err)
		}
	}
	return &Compiled{rule: rule, rm: rm}, nil
}

// Eval executa a regra sobre record. Condição falsa sem else devolve nil.
func (c *Compiled) Eval(record interface{}) (interface{}, error) {
	conditionMet, err := c.rm.EvaluateBool(c.rule.Condition, record)
	if err != nil {
		return nil, fmt.Errorf("falha ao avaliar condição da regra '%s': %w", c.rule.Name, err)
	}

	expr := c.rule.Value
	if !conditionMet {
		if c.rule.ElseValue == "" {
			return nil, nil
		}
		expr = c.rule.ElseValue
	}

	val, err := c.rm.EvaluateValue(expr, record)
	if err != nil {
		return nil, fmt.Errorf("falha ao calcular valor da regra '%s': %w", c.rule.Name, err)
	}
	return val, nil
}

// Source devolve a expressão principal.
func (c *Compiled) Source() string {
	return c.rule.Value
}
