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
package path

import (
	"encoding/json"
	"testing"
)

var userJSON = []byte(`{
	"OrgId": 6606,
	"UserId": 101,
	"FirstName": "Ada",
	"MiddleName": null,
	"Activation": { "IsActive": true },
	"Roles": [
		{ "Id": 110, "Name": "Student" },
		{ "Id": 109, "Name": "Instructor" }
	]
}`)

func decode(t *testing.T) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(userJSON, &data); err != nil {
		t.Fatalf("Erro ao decodificar fixture: %v", err)
	}
	return data
}

func TestLookup(t *testing.T) {
	data := decode(t)

	tests := []struct {
		name   string
		path   string
		want   interface{}
		wantOK bool
	}{
		{"campo simples", "FirstName", "Ada", true},
		{"numero", "UserId", float64(101), true},
		{"aninhado", "Activation.IsActive", true, true},
		{"indice de array", "Roles[1].Name", "Instructor", true},
		{"campo inexistente", "LastName", nil, false},
		{"segmento inexistente no meio", "Profile.Nick", nil, false},
		{"nulo no meio do caminho", "MiddleName.First", nil, false},
		{"valor nulo", "MiddleName", nil, false},
		{"indice fora do range", "Roles[5].Name", nil, false},
		{"indice invalido", "Roles[x]", nil, false},
		{"escalar tratado como objeto", "FirstName.Length", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(data, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("ok: esperado %v, obtido %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("valor: esperado %v, obtido %v", tt.want, got)
			}
		})
	}
}

func TestLookup_NilData(t *testing.T) {
	if _, ok := Lookup(nil, "FirstName"); ok {
		t.Error("Lookup em nil deveria retornar ausente")
	}
}

func TestLookup_EmptyPath(t *testing.T) {
	data := decode(t)
	got, ok := Lookup(data, "  ")
	if !ok {
		t.Fatal("caminho vazio deveria retornar o objeto completo")
	}
	if _, isMap := got.(map[string]interface{}); !isMap {
		t.Errorf("esperado map, obtido %T", got)
	}
}

func TestGetAndGetString(t *testing.T) {
	data := decode(t)

	if v := Get(data, "LastName", "n/a"); v != "n/a" {
		t.Errorf("fallback esperado, obtido %v", v)
	}
	if s := GetString(data, "OrgId"); s != "6606" {
		t.Errorf("esperado '6606', obtido %q", s)
	}
	if s := GetString(data, "Activation.IsActive"); s != "true" {
		t.Errorf("esperado 'true', obtido %q", s)
	}
	if s := GetString(data, "Nope"); s != "" {
		t.Errorf("esperado vazio, obtido %q", s)
	}
	if !Exists(data, "Roles[0].Id") {
		t.Error("Roles[0].Id deveria existir")
	}
}
