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
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/raywall/fast-valence-client/pkg/auth"
	"github.com/raywall/fast-valence-client/pkg/metrics"
	"github.com/rs/zerolog"
)

// Mode define como as requisições são autenticadas.
type Mode string

const (
	// ModeSigned assina cada URL com o contexto do usuário.
	ModeSigned Mode = "signed"
	// ModeToken usa o bearer token renovável da Session.
	ModeToken Mode = "token"
)

// Call carrega os argumentos de uma chamada.
type Call struct {
	// PathParams preenche os placeholders {nome} do template.
	PathParams map[string]string
	// Query é anexada na ordem em que foi montada.
	Query Query
	// Body é enviado como JSON. Structs são validadas antes do envio.
	Body interface{}
	// User assina a chamada. Nil usa o usuário padrão do Dispatcher.
	User *auth.UserContext
}

// Sender envia uma operação com um Signer específico, sem lógica de login.
type Sender interface {
	Send(ctx context.Context, name string, call Call, signer Signer) (interface{}, error)
}

// Dispatcher resolve operações nomeadas em requisições HTTP e decide,
// por chamada, se é preciso (re)autenticar.
type Dispatcher struct {
	baseURL     string
	endpoints   Endpoints
	transport   Transport
	mode        Mode
	primary     *auth.Session
	sessions    *auth.SessionPool
	factory     func(userID string) *auth.Session
	login       *LoginController
	defaultUser *auth.UserContext
	validate    *validator.Validate
	logger      zerolog.Logger
	recorder    *metrics.Recorder
	now         func() time.Time
}

// DispatcherOption configura o Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEndpoints troca a tabela de operações.
func WithEndpoints(endpoints Endpoints) DispatcherOption {
	return func(d *Dispatcher) { d.endpoints = endpoints }
}

// WithTokenMode ativa o modo token. session, quando informada, é a sessão
// do usuário padrão; os demais usuários recebem sessões próprias.
func WithTokenMode(session *auth.Session) DispatcherOption {
	return func(d *Dispatcher) {
		d.mode = ModeToken
		d.primary = session
	}
}

// WithSessionFactory define como criar a sessão de um usuário que ainda
// não tem uma.
func WithSessionFactory(factory func(userID string) *auth.Session) DispatcherOption {
	return func(d *Dispatcher) { d.factory = factory }
}

// WithDefaultUser define o usuário usado quando Call.User é nil.
func WithDefaultUser(user *auth.UserContext) DispatcherOption {
	return func(d *Dispatcher) { d.defaultUser = user }
}

// WithLogger define o logger do Dispatcher e do login.
func WithLogger(logger zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithRecorder define o destino das métricas.
func WithRecorder(recorder *metrics.Recorder) DispatcherOption {
	return func(d *Dispatcher) { d.recorder = recorder }
}

// NewDispatcher cria um Dispatcher em modo signed com a tabela padrão.
func NewDispatcher(baseURL string, transport Transport, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		baseURL:   baseURL,
		endpoints: DefaultEndpoints(),
		transport: transport,
		mode:      ModeSigned,
		validate:  sharedValidator(),
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.transport == nil {
		d.transport = NewHTTPTransport(nil)
	}
	if d.mode == ModeToken {
		factory := d.factory
		if factory == nil {
			logger := d.logger
			factory = func(string) *auth.Session { return auth.NewSession(auth.WithLogger(logger)) }
		}
		d.sessions = auth.NewSessionPool(factory)
		if d.primary != nil {
			d.sessions.Bind(sessionKey(d.defaultUser), d.primary)
		}
	}
	d.login = NewLoginController(d.sessions, d, d.logger, d.recorder)
	return d
}

// Mode informa o modo de autenticação.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Session devolve a sessão do usuário padrão (nil no modo signed).
func (d *Dispatcher) Session() *auth.Session {
	return d.SessionFor(d.defaultUser)
}

// SessionFor devolve a sessão de user no modo token (nil no modo signed).
func (d *Dispatcher) SessionFor(user *auth.UserContext) *auth.Session {
	if d.sessions == nil {
		return nil
	}
	return d.sessions.For(sessionKey(user))
}

// sessionKey identifica a sessão de um usuário pelo UserID.
func sessionKey(user *auth.UserContext) string {
	if user == nil {
		return ""
	}
	return user.UserID
}

// Dispatch executa a operação name.
//
// O payload é validado antes de qualquer envio. No modo token, uma sessão
// inválida dispara o login antes do envio; com sessão válida, qualquer
// falha dispara um novo login seguido de exatamente um reenvio, e a falha
// desse reenvio é devolvida sem alteração.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, call Call) (interface{}, error) {
	if _, err := d.endpoints.Lookup(name); err != nil {
		return nil, err
	}
	if err := validatePayload(d.validate, name, call.Body); err != nil {
		d.logger.Debug().Str("operation", name).Err(err).Msg("payload rejeitado")
		return nil, err
	}

	user := call.User
	if user == nil {
		user = d.defaultUser
	}

	if d.mode != ModeToken {
		return d.Send(ctx, name, call, URLSigner{User: user})
	}

	session := d.sessions.For(sessionKey(user))
	signer := BearerSigner{Session: session}

	if !session.IsValid() {
		if err := d.login.LoginWithRetry(ctx, user); err != nil {
			return nil, err
		}
		return d.Send(ctx, name, call, signer)
	}

	data, err := d.Send(ctx, name, call, signer)
	if err == nil {
		return data, nil
	}

	d.logger.Warn().Str("operation", name).Err(err).Msg("falha com sessão válida, renovando login")
	if err := d.login.LoginWithRetry(ctx, user); err != nil {
		return nil, err
	}
	return d.Send(ctx, name, call, signer)
}

// Send monta a URL, assina com signer e executa uma única tentativa.
func (d *Dispatcher) Send(ctx context.Context, name string, call Call, signer Signer) (interface{}, error) {
	endpoint, err := d.endpoints.Lookup(name)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Operation:     name,
		Method:        endpoint.Method,
		BaseURL:       d.baseURL,
		Path:          BuildURL(endpoint.Path, call.PathParams, call.Query),
		Body:          call.Body,
		CorrelationID: uuid.NewString(),
	}

	if signer != nil {
		if err := signer.Sign(req); err != nil {
			return nil, fmt.Errorf("erro ao assinar '%s': %w", name, err)
		}
	}

	start := d.now()
	data, err := d.transport.Do(ctx, req)
	elapsed := d.now().Sub(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	_ = d.recorder.Incr(metrics.EventRequest, "operation:"+name, "outcome:"+outcome)
	_ = d.recorder.Record(metrics.EventRequestLatency, float64(elapsed.Milliseconds()), "operation:"+name)

	event := d.logger.Debug()
	if err != nil {
		event = event.Err(err).Int("status", StatusCode(err))
	}
	event.
		Str("operation", name).
		Str("method", req.Method).
		Str("path", redact(req.Path)).
		Str("correlation_id", req.CorrelationID).
		Dur("elapsed", elapsed).
		Msg("dispatch")

	return data, err
}
