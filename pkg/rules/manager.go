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

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// RecordVar é o nome da variável que expõe o registro bruto às expressões.
const RecordVar = "record"

var (
	listType = reflect.TypeOf([]interface{}{})
	mapType  = reflect.TypeOf(map[string]interface{}{})
)

// RuleManager mantém o ambiente CEL e um cache de programas compilados.
type RuleManager struct {
	env   *cel.Env
	mu    sync.RWMutex
	cache map[string]cel.Program
}

// NewRuleManager inicializa o ambiente CEL com a variável record (dinâmica).
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable(RecordVar, cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	return &RuleManager{env: env, cache: make(map[string]cel.Program)}, nil
}

// Compile compila expr uma única vez; chamadas seguintes usam o cache.
func (rm *RuleManager) Compile(expr string) (cel.Program, error) {
	rm.mu.RLock()
	prg, ok := rm.cache[expr]
	rm.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro compilação CEL '%s': %w", expr, issues.Err())
	}
	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro programa CEL: %w", err)
	}

	rm.mu.Lock()
	rm.cache[expr] = prg
	rm.mu.Unlock()
	return prg, nil
}

// EvaluateBool avalia uma condição. Expressão vazia aprova.
func (rm *RuleManager) EvaluateBool(expression string, record interface{}) (bool, error) {
	if expression == "" {
		return true, nil
	}

	out, err := rm.eval(expression, record)
	if err != nil {
		return false, err
	}
	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado de '%s' não é booleano", expression)
}

// EvaluateValue avalia expression e devolve o valor em tipos Go nativos.
func (rm *RuleManager) EvaluateValue(expression string, record interface{}) (interface{}, error) {
	if expression == "" {
		return nil, nil
	}

	out, err := rm.eval(expression, record)
	if err != nil {
		return nil, err
	}
	return native(out), nil
}

func (rm *RuleManager) eval(expression string, record interface{}) (ref.Val, error) {
	prg, err := rm.Compile(expression)
	if err != nil {
		return nil, err
	}

	out, _, err := prg.Eval(map[string]interface{}{RecordVar: Normalize(record)})
	if err != nil {
		return nil, fmt.Errorf("erro execução CEL '%s': %w", expression, err)
	}
	return out, nil
}

func native(val ref.Val) interface{} {
	switch val.Type() {
	case types.ListType:
		if v, err := val.ConvertToNative(listType); err == nil {
			return v
		}
	case types.MapType:
		if v, err := val.ConvertToNative(mapType); err == nil {
			return v
		}
	case types.NullType:
		return nil
	}
	return val.Value()
}

// Normalize converte json.Number (decodificação com UseNumber) em int64 ou
// float64 para que o CEL possa operar aritmeticamente.
func Normalize(data interface{}) interface{} {
	switch v := data.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return string(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	default:
		return data
	}
}
