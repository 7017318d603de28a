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
	"strings"

	"github.com/raywall/fast-valence-client/json/path"
)

// Chaves de saída do registro de matrícula.
const (
	KeyCourseID        = "courseId"
	KeyUserID          = "userId"
	KeyFirstName       = "firstName"
	KeyLastName        = "lastName"
	KeyEmailAddress    = "emailAddress"
	KeyEnrollmentState = "enrollmentState"
	KeyRootAccountID   = "rootAccountId"
)

// EnrollmentMap devolve o FieldMap fixo aplicado aos detalhes de cada membro
// da turma. OrgUnitId é injetado no registro pelo orquestrador.
func EnrollmentMap() FieldMap {
	return FieldMap{
		KeyCourseID:        Path("OrgUnitId"),
		KeyUserID:          Path("UserId"),
		KeyFirstName:       Path("FirstName"),
		KeyLastName:        Derive(fullLastName),
		KeyEmailAddress:    Path("ExternalEmail"),
		KeyEnrollmentState: Path("Activation.IsActive"),
		KeyRootAccountID:   Path("OrgId"),
	}
}

// fullLastName junta MiddleName e LastName ignorando os vazios.
func fullLastName(record map[string]interface{}) interface{} {
	var names []string
	for _, key := range []string{"MiddleName", "LastName"} {
		if name := strings.TrimSpace(path.GetString(record, key)); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}
