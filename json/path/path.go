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

// Package path resolve caminhos pontuados (ex: "Activation.IsActive",
// "Cursos[1].Nome") sobre dados JSON já decodificados.
//
// Diferente de um extrator estrito, Lookup nunca retorna erro: qualquer
// segmento ausente, valor nulo no meio do caminho ou tipo inesperado resulta
// em (nil, false), o marcador de ausência usado pelo mapper.
package path

import (
	"strconv"
	"strings"
)

// segment representa uma parte do caminho
type segment struct {
	field   string
	isIndex bool
	index   int
}

// Lookup navega por data seguindo o caminho pontuado.
// Exemplos de caminhos válidos:
//   - "FirstName" -> valor direto
//   - "Activation.IsActive" -> navega em objetos aninhados
//   - "Items[0]" -> primeiro elemento de um array
//   - "Items[1].Name" -> campo de um elemento do array
//
// Um caminho vazio retorna o próprio data.
func Lookup(data interface{}, path string) (interface{}, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return data, data != nil
	}

	current := data
	for _, seg := range parse(path) {
		if current == nil {
			return nil, false
		}

		if seg.isIndex {
			arr, ok := current.([]interface{})
			if !ok || seg.index < 0 || seg.index >= len(arr) {
				return nil, false
			}
			current = arr[seg.index]
			continue
		}

		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, exists := m[seg.field]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, current != nil
}

// Get é como Lookup, mas devolve fallback quando o caminho não existe.
func Get(data interface{}, path string, fallback interface{}) interface{} {
	if value, ok := Lookup(data, path); ok {
		return value
	}
	return fallback
}

// GetString devolve o valor como string, ou "" se ausente.
// Valores não-string (ex: json.Number) são convertidos via String() quando possível.
func GetString(data interface{}, path string) string {
	value, ok := Lookup(data, path)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case interface{ String() string }:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Exists verifica se um caminho existe e não é nulo.
func Exists(data interface{}, path string) bool {
	_, ok := Lookup(data, path)
	return ok
}

// parse converte uma string de caminho em segmentos estruturados
func parse(path string) []segment {
	var segments []segment

	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}

		open := strings.Index(part, "[")
		if open == -1 {
			segments = append(segments, segment{field: part})
			continue
		}

		close := strings.Index(part, "]")
		if close == -1 || close < open {
			// bracket não fechado, trata como campo normal
			segments = append(segments, segment{field: part})
			continue
		}

		if name := part[:open]; name != "" {
			segments = append(segments, segment{field: name})
		}

		index, err := strconv.Atoi(part[open+1 : close])
		if err != nil {
			// índice inválido nunca casa com nada
			segments = append(segments, segment{isIndex: true, index: -1})
		} else {
			segments = append(segments, segment{isIndex: true, index: index})
		}

		if rest := part[close+1:]; rest != "" {
			segments = append(segments, parse(rest)...)
		}
	}

	return segments
}
