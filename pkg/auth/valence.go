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
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AuthTokenPath é o endpoint de login interativo do usuário (ID-key auth).
const AuthTokenPath = "/d2l/auth/api/token"

// ApplicationContext identifica a aplicação registrada na plataforma.
type ApplicationContext struct {
	AppID  string
	AppKey string
}

// UserContext combina a aplicação com um usuário e assina cada URL
// conforme o esquema ID-key da Valence (x_a, x_b, x_c, x_d, x_t).
type UserContext struct {
	App     ApplicationContext
	UserID  string
	UserKey string

	now Clock
}

// NewApplicationContext cria o contexto da aplicação.
func NewApplicationContext(appID, appKey string) ApplicationContext {
	return ApplicationContext{AppID: appID, AppKey: appKey}
}

// UserContext deriva um contexto de usuário a partir da aplicação.
func (a ApplicationContext) UserContext(userID, userKey string) *UserContext {
	return &UserContext{App: a, UserID: userID, UserKey: userKey, now: time.Now}
}

// WithClock devolve uma cópia do contexto usando o relógio informado.
func (u *UserContext) WithClock(clock Clock) *UserContext {
	clone := *u
	clone.now = clock
	return &clone
}

// AuthenticationURL monta a URL para onde o usuário é redirecionado para
// autorizar a aplicação; após o login a plataforma redireciona para callback.
func (a ApplicationContext) AuthenticationURL(baseURL, callback string) string {
	query := url.Values{}
	query.Set("x_a", a.AppID)
	query.Set("x_b", Sign(a.AppKey, callback))
	query.Set("x_target", callback)

	return strings.TrimRight(baseURL, "/") + AuthTokenPath + "?" + query.Encode()
}

// SignedQuery retorna os parâmetros de assinatura para method + path.
// O path é assinado sem a query string e em minúsculas.
func (u *UserContext) SignedQuery(method, path string) url.Values {
	now := u.now
	if now == nil {
		now = time.Now
	}
	timestamp := strconv.FormatInt(now().Unix(), 10)

	base := path
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}

	signature := fmt.Sprintf("%s&%s&%s", strings.ToUpper(method), strings.ToLower(base), timestamp)

	query := url.Values{}
	query.Set("x_a", u.App.AppID)
	query.Set("x_b", u.UserID)
	query.Set("x_c", Sign(u.App.AppKey, signature))
	query.Set("x_d", Sign(u.UserKey, signature))
	query.Set("x_t", timestamp)
	return query
}

// SignURL anexa a assinatura ao path (que pode já conter query string).
func (u *UserContext) SignURL(method, path string) string {
	delimiter := "?"
	if strings.Contains(path, "?") {
		delimiter = "&"
	}
	return path + delimiter + u.SignedQuery(method, path).Encode()
}

// Sign calcula base64url(HMAC-SHA256(key, data)) sem padding.
func Sign(key, data string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// BaseURL combina host e porta. Um host sem esquema recebe https; a porta
// só é adicionada quando o host não traz uma e ela difere do padrão do esquema.
func BaseURL(host string, port int) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	parsed, err := url.Parse(host)
	if err != nil || port == 0 || parsed.Port() != "" {
		return host
	}

	if (parsed.Scheme == "https" && port == 443) || (parsed.Scheme == "http" && port == 80) {
		return host
	}

	parsed.Host = parsed.Hostname() + ":" + strconv.Itoa(port)
	return strings.TrimRight(parsed.String(), "/")
}
