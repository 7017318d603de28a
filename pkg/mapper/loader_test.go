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
	"testing"

	"github.com/raywall/fast-valence-client/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizMapYAML = `
quizId: QuizId
name:
  path: Name
active:
  path: IsActive
label:
  expr: record.Name + ' (' + string(record.QuizId) + ')'
status:
  when: record.IsActive
  expr: "'open'"
  else: "'closed'"
`

func TestLoadFieldMap(t *testing.T) {
	rm, err := rules.NewRuleManager()
	require.NoError(t, err)

	fm, err := LoadFieldMap([]byte(quizMapYAML), rm)
	require.NoError(t, err)
	require.Len(t, fm, 5)
	assert.Equal(t, "path:QuizId", fm["quizId"].String())

	quizzes := []interface{}{
		map[string]interface{}{"QuizId": json.Number("12"), "Name": "Intro", "IsActive": true, "Extra": 1},
		map[string]interface{}{"QuizId": json.Number("13"), "Name": "Final", "IsActive": false},
	}

	out, err := MapRecords(quizzes, fm)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, map[string]interface{}{
		"quizId": "12",
		"name":   "Intro",
		"active": true,
		"label":  "Intro (12)",
		"status": "open",
	}, out[0])
	assert.Equal(t, "closed", out[1]["status"])
	assert.NotContains(t, out[0], "Extra")
}

func TestLoadFieldMap_Errors(t *testing.T) {
	rm, err := rules.NewRuleManager()
	require.NoError(t, err)

	tests := []struct {
		name string
		yaml string
		rm   *rules.RuleManager
	}{
		{"yaml inválido", "a: [", rm},
		{"path e expr", "a:\n  path: X\n  expr: record.X\n", rm},
		{"entrada vazia", "a:\n  when: record.X\n", rm},
		{"sintaxe CEL", "a:\n  expr: record.X +\n", rm},
		{"expr sem manager", "a:\n  expr: record.X\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFieldMap([]byte(tt.yaml), tt.rm)
			assert.Error(t, err)
		})
	}
}
