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

	"github.com/raywall/fast-valence-client/json/path"
	"github.com/raywall/fast-valence-client/pkg/rules"
)

// DeriveFunc calcula um campo a partir do registro bruto inteiro.
type DeriveFunc func(record map[string]interface{}) interface{}

type fieldKind int

const (
	kindPath fieldKind = iota
	kindDerive
	kindExpr
)

// Field é uma entrada do FieldMap: um caminho pontilhado, uma função ou
// uma expressão CEL compilada. Construa com Path, Derive ou Expr.
type Field struct {
	kind   fieldKind
	path   string
	derive DeriveFunc
	expr   *rules.Compiled
}

// Path seleciona o valor em p (ex: "Activation.IsActive").
func Path(p string) Field {
	return Field{kind: kindPath, path: p}
}

// Derive calcula o valor com fn.
func Derive(fn DeriveFunc) Field {
	return Field{kind: kindDerive, derive: fn}
}

// Expr avalia uma regra CEL com o registro exposto como record.
func Expr(rule *rules.Compiled) Field {
	return Field{kind: kindExpr, expr: rule}
}

// FieldMap associa chaves de saída a Fields.
type FieldMap map[string]Field

func (f Field) resolve(record map[string]interface{}) (interface{}, error) {
	switch f.kind {
	case kindPath:
		val, _ := path.Lookup(record, f.path)
		return val, nil
	case kindDerive:
		if f.derive == nil {
			return nil, nil
		}
		return f.derive(record), nil
	case kindExpr:
		if f.expr == nil {
			return nil, nil
		}
		return f.expr.Eval(record)
	default:
		return nil, fmt.Errorf("tipo de campo desconhecido: %d", f.kind)
	}
}

// String descreve a origem do campo, útil em logs.
func (f Field) String() string {
	switch f.kind {
	case kindPath:
		return "path:" + f.path
	case kindExpr:
		if f.expr != nil {
			return "expr:" + f.expr.Source()
		}
		return "expr:"
	default:
		return "derive"
	}
}
