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
package valence

import (
	"context"
	"fmt"
	"maps"
	"os"

	"github.com/raywall/fast-valence-client/api"
	"github.com/raywall/fast-valence-client/json/path"
	"github.com/raywall/fast-valence-client/pkg/mapper"
	"github.com/raywall/fast-valence-client/pkg/metrics"
	"github.com/raywall/fast-valence-client/pkg/rules"
)

// ListEnrollments busca a lista da turma, os detalhes de cada membro em
// paralelo e devolve os registros mapeados por mapper.EnrollmentMap (mais o
// YAML de ClientConfig.EnrollmentMap, se houver), na ordem da lista. Qualquer falha invalida o resultado inteiro.
func (c *Client) ListEnrollments(ctx context.Context, version, orgUnitID, userID, userKey string) ([]map[string]interface{}, error) {
	version = c.version(version)
	user := c.userContext(userID, userKey)
	log := c.logger.With().
		Str("operation", "listEnrollments").
		Str("org_unit_id", orgUnitID).
		Logger()

	raw, err := c.dispatcher.Dispatch(ctx, api.OpClasslist, api.Call{
		PathParams: map[string]string{"version": version, "orgUnitId": orgUnitID},
		User:       user,
	})
	if err != nil {
		return nil, err
	}

	members, ok := raw.([]interface{})
	if raw != nil && !ok {
		return nil, fmt.Errorf("classlist de %s: esperado lista, recebido %T", orgUnitID, raw)
	}
	log.Debug().Int("members", len(members)).Msg("list_fetched")
	_ = c.recorder.Record(metrics.EventFanOut, float64(len(members)), "operation:listEnrollments")

	details, err := api.FanOut(ctx, members, c.fanOutLimit, func(ctx context.Context, member interface{}) (interface{}, error) {
		id := path.GetString(member, "Identifier")
		if id == "" {
			return nil, fmt.Errorf("membro da turma %s sem Identifier", orgUnitID)
		}
		return c.dispatcher.Dispatch(ctx, api.OpUser, api.Call{
			PathParams: map[string]string{"version": version, "userId": id},
			User:       user,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Int("details", len(details)).Msg("details_fetched")

	tagged := make([]interface{}, len(details))
	for i, detail := range details {
		tagged[i] = withOrgUnit(detail, orgUnitID)
	}

	records, err := mapper.MapRecords(tagged, c.enrollments)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("records", len(records)).Msg("mapped")
	return records, nil
}

// loadEnrollmentMap parte de mapper.EnrollmentMap e aplica por cima as
// entradas do arquivo, quando informado.
func loadEnrollmentMap(file string) (mapper.FieldMap, error) {
	fields := mapper.EnrollmentMap()
	if file == "" {
		return fields, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler enrollment map %s: %w", file, err)
	}
	rm, err := rules.NewRuleManager()
	if err != nil {
		return nil, err
	}
	custom, err := mapper.LoadFieldMap(data, rm)
	if err != nil {
		return nil, fmt.Errorf("enrollment map %s: %w", file, err)
	}
	maps.Copy(fields, custom)
	return fields, nil
}

// withOrgUnit copia o registro adicionando OrgUnitId, de onde sai o courseId.
func withOrgUnit(detail interface{}, orgUnitID string) map[string]interface{} {
	record, _ := detail.(map[string]interface{})
	out := make(map[string]interface{}, len(record)+1)
	maps.Copy(out, record)
	out["OrgUnitId"] = orgUnitID
	return out
}
