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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/raywall/fast-valence-client/api"
	"github.com/raywall/fast-valence-client/pkg/auth"
	"github.com/raywall/fast-valence-client/pkg/config"
	"github.com/raywall/fast-valence-client/pkg/logger"
	"github.com/raywall/fast-valence-client/pkg/mapper"
	"github.com/raywall/fast-valence-client/pkg/metrics"
	"github.com/raywall/fast-valence-client/pkg/observability"
	"github.com/rs/zerolog"
)

// ErrMissingCallback indica que nem o argumento nem a configuração trazem
// uma URL de retorno.
var ErrMissingCallback = errors.New("callback não informado")

// Client expõe as operações da Valence API. É seguro para uso concorrente;
// nenhuma chamada altera o estado compartilhado além da sessão do modo token.
type Client struct {
	cfg         config.ClientConfig
	app         auth.ApplicationContext
	baseURL     string
	dispatcher  *api.Dispatcher
	logger      zerolog.Logger
	recorder    *metrics.Recorder
	closer      observability.Closer
	clock       auth.Clock
	fanOutLimit int
	enrollments mapper.FieldMap
}

// New cria o cliente a partir da configuração. Campos opcionais vazios
// recebem os valores padrão antes da validação.
func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	cfg = applyDefaults(cfg)
	if err := config.NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:         cfg,
		app:         auth.NewApplicationContext(cfg.AppID, cfg.AppKey),
		baseURL:     auth.BaseURL(cfg.Host, cfg.Port),
		clock:       o.clock,
		fanOutLimit: cfg.FanOutLimit,
	}
	if o.fanOutLimit != nil {
		c.fanOutLimit = *o.fanOutLimit
	}

	enrollments, err := loadEnrollmentMap(cfg.EnrollmentMap)
	if err != nil {
		return nil, err
	}
	c.enrollments = enrollments

	switch {
	case o.logger != nil:
		c.logger = *o.logger
	case cfg.Logging.Enabled:
		c.logger = logger.Configure(cfg.Logging)
	default:
		c.logger = zerolog.Nop()
	}

	provider := o.provider
	if provider == nil {
		closer, err := observability.SetupMetrics(cfg.Metrics)
		if err != nil {
			return nil, err
		}
		c.closer = closer
		provider = closer
	}
	c.recorder = metrics.NewRecorder(provider, nil)

	transport := o.transport
	if transport == nil {
		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Timeout}
		}
		transport = api.NewHTTPTransport(httpClient)
	}

	dispatcherOpts := []api.DispatcherOption{
		api.WithDefaultUser(c.userContext("", "")),
		api.WithLogger(c.logger),
		api.WithRecorder(c.recorder),
	}
	if cfg.TokenMode() {
		dispatcherOpts = append(dispatcherOpts,
			api.WithTokenMode(c.newSession(o.store)),
			api.WithSessionFactory(c.userSession),
		)
	}
	c.dispatcher = api.NewDispatcher(c.baseURL, transport, dispatcherOpts...)

	return c, nil
}

func applyDefaults(cfg config.ClientConfig) config.ClientConfig {
	if cfg.Mode == "" {
		cfg.Mode = config.ModeSigned
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = "1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	return cfg
}

// newSession cria a sessão do modo token, com store Redis quando configurado,
// e tenta reaproveitar um token ainda válido do store.
func (c *Client) newSession(store auth.Store) *auth.Session {
	if store == nil && c.cfg.Session.RedisAddr != "" {
		store = auth.NewRedisStoreFromAddr(c.cfg.Session.RedisAddr, c.cfg.Session.RedisPassword, c.cfg.Session.RedisKey)
	}

	opts := c.sessionOptions()
	if store != nil {
		opts = append(opts, auth.WithStore(store))
	}
	session := auth.NewSession(opts...)

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if ok, err := session.Restore(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("não foi possível restaurar a sessão")
		} else if ok {
			c.logger.Debug().Msg("sessão restaurada do store")
		}
	}
	return session
}

// userSession cria a sessão de um usuário diferente do configurado. Ela
// fica só em memória: o store guarda apenas o token do usuário padrão.
func (c *Client) userSession(string) *auth.Session {
	return auth.NewSession(c.sessionOptions()...)
}

func (c *Client) sessionOptions() []auth.SessionOption {
	opts := []auth.SessionOption{auth.WithLogger(c.logger)}
	if c.clock != nil {
		opts = append(opts, auth.WithClock(c.clock))
	}
	return opts
}

// userContext monta o contexto da chamada; cada campo vazio cai no padrão
// da configuração.
func (c *Client) userContext(userID, userKey string) *auth.UserContext {
	if userID == "" {
		userID = c.cfg.UserID
	}
	if userKey == "" {
		userKey = c.cfg.UserKey
	}
	user := c.app.UserContext(userID, userKey)
	if c.clock != nil {
		user = user.WithClock(c.clock)
	}
	return user
}

func (c *Client) version(version string) string {
	if version == "" {
		return c.cfg.DefaultVersion
	}
	return version
}

// Close libera o provider de métricas criado pelo cliente.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// BaseURL devolve a URL base derivada de host e porta.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetVersions lista as versões dos produtos da API.
func (c *Client) GetVersions(ctx context.Context) (interface{}, error) {
	return c.dispatcher.Dispatch(ctx, api.OpVersions, api.Call{})
}

// GetUserEnrollments lista as matrículas do usuário na versão padrão.
func (c *Client) GetUserEnrollments(ctx context.Context, userID, userKey string) (interface{}, error) {
	return c.dispatcher.Dispatch(ctx, api.OpMyEnrollments, api.Call{
		PathParams: map[string]string{"version": c.cfg.DefaultVersion},
		User:       c.userContext(userID, userKey),
	})
}

// ListQuizzes lista os questionários de uma unidade organizacional.
func (c *Client) ListQuizzes(ctx context.Context, version, orgUnitID, userID, userKey string) (interface{}, error) {
	return c.dispatcher.Dispatch(ctx, api.OpQuizzes, api.Call{
		PathParams: map[string]string{"version": c.version(version), "orgUnitId": orgUnitID},
		User:       c.userContext(userID, userKey),
	})
}

// ListClassMembers devolve a lista de membros da turma sem mapeamento.
func (c *Client) ListClassMembers(ctx context.Context, version, orgUnitID, userID, userKey string) (interface{}, error) {
	return c.dispatcher.Dispatch(ctx, api.OpClasslist, api.Call{
		PathParams: map[string]string{"version": c.version(version), "orgUnitId": orgUnitID},
		User:       c.userContext(userID, userKey),
	})
}

// EnrollmentRequest matricula um usuário em uma unidade organizacional.
type EnrollmentRequest struct {
	OrgUnitID int64 `json:"OrgUnitId" validate:"required,gt=0"`
	UserID    int64 `json:"UserId" validate:"required,gt=0"`
	RoleID    int64 `json:"RoleId" validate:"required,gt=0"`
}

// EnrollUser cria a matrícula. Um payload inválido devolve
// *api.ValidationError sem enviar nada.
func (c *Client) EnrollUser(ctx context.Context, version string, req EnrollmentRequest, userID, userKey string) (interface{}, error) {
	return c.dispatcher.Dispatch(ctx, api.OpCreateEnrollment, api.Call{
		PathParams: map[string]string{"version": c.version(version)},
		Body:       req,
		User:       c.userContext(userID, userKey),
	})
}

// GetAuthenticationURL monta a URL de login interativo. Sem callback usa
// o configurado.
func (c *Client) GetAuthenticationURL(callback string) (string, error) {
	if callback == "" {
		callback = c.cfg.CallbackURL
	}
	if callback == "" {
		return "", ErrMissingCallback
	}
	return c.app.AuthenticationURL(c.baseURL, callback), nil
}

func (c *Client) String() string {
	return fmt.Sprintf("valence.Client{base=%s mode=%s}", c.baseURL, c.cfg.Mode)
}
