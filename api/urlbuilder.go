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
package api

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// placeholderRegex identifica parâmetros no template (ex: {orgUnitId})
var placeholderRegex = regexp.MustCompile(`\{(.+?)\}`)

// QueryParam é um par chave/valor da query string.
type QueryParam struct {
	Key   string
	Value interface{}
}

// Query é uma lista ordenada de parâmetros de query; a serialização segue
// a ordem de inserção.
type Query []QueryParam

// Add anexa um par ao final da query e devolve a query resultante.
func (q Query) Add(key string, value interface{}) Query {
	return append(q, QueryParam{Key: key, Value: value})
}

// BuildURL substitui os placeholders {nome} do template pelos valores de
// params e anexa a query na ordem em que foi montada.
//
// Placeholders sem valor (ou com valor vazio) permanecem literalmente no
// resultado; a função nunca falha, permitindo aplicação parcial.
//
// Exemplo:
//
//	BuildURL("/d2l/api/le/{version}/{orgUnitId}/quizzes/",
//		map[string]string{"version": "1.0", "orgUnitId": "6606"},
//		Query{}.Add("bookmark", "abc"))
//	// "/d2l/api/le/1.0/6606/quizzes/?bookmark=abc"
func BuildURL(template string, params map[string]string, query Query) string {
	url := placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := params[name]; ok && value != "" {
			return value
		}
		return match
	})

	if len(query) == 0 {
		return url
	}

	var builder strings.Builder
	builder.WriteString(url)

	delimiter := "?"
	if strings.Contains(url, "?") {
		delimiter = "&"
	}

	for _, param := range query {
		builder.WriteString(delimiter)
		builder.WriteString(param.Key)
		builder.WriteString("=")
		builder.WriteString(queryValue(param.Value))
		delimiter = "&"
	}

	return builder.String()
}

// queryValue serializa objetos (e nil) como JSON e demais valores como string
func queryValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}

	kind := reflect.TypeOf(value).Kind()
	if kind == reflect.Ptr {
		kind = reflect.TypeOf(value).Elem().Kind()
	}

	switch kind {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	default:
		return fmt.Sprint(value)
	}
}
