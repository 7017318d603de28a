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
	"encoding/json"
	"fmt"
	"strconv"
)

// Map projeta data através de fm. Uma lista é mapeada elemento a elemento
// mantendo a ordem, inclusive listas aninhadas; um registro vira um novo
// mapa com exatamente as chaves de fm. Valores numéricos do resultado são
// convertidos em string decimal.
func Map(data interface{}, fm FieldMap) (interface{}, error) {
	if items, ok := data.([]interface{}); ok {
		out := make([]interface{}, len(items))
		for i, item := range items {
			mapped, err := Map(item, fm)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = mapped
		}
		return out, nil
	}

	return mapRecord(data, fm)
}

// MapRecords é como Map, mas sempre devolve uma lista de registros.
func MapRecords(data interface{}, fm FieldMap) ([]map[string]interface{}, error) {
	items, ok := data.([]interface{})
	if !ok {
		items = []interface{}{data}
	}

	out := make([]map[string]interface{}, len(items))
	for i, item := range items {
		mapped, err := mapRecord(item, fm)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = mapped
	}
	return out, nil
}

func mapRecord(data interface{}, fm FieldMap) (map[string]interface{}, error) {
	record, _ := data.(map[string]interface{})
	if record == nil {
		record = map[string]interface{}{}
	}

	result := make(map[string]interface{}, len(fm))
	for key, field := range fm {
		val, err := field.resolve(record)
		if err != nil {
			return nil, fmt.Errorf("campo '%s' (%s): %w", key, field, err)
		}
		result[key] = Stringify(val)
	}
	return result, nil
}

// Stringify converte recursivamente números em string decimal, sem
// alterar o valor recebido.
func Stringify(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Stringify(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Stringify(item)
		}
		return out
	default:
		return v
	}
}
