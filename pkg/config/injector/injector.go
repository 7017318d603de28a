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
package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Regex para capturar ${env.NOME}
var pattern = regexp.MustCompile(`\$\{env\.([^}]+)\}`)

// Resolver traduz referências externas (ssm://, secretsmanager://).
type Resolver interface {
	Resolve(ctx context.Context, value string) (string, error)
}

// Injector percorre uma struct de configuração substituindo ${env.X}
// e resolvendo referências a segredos em campos string.
type Injector struct {
	resolver  Resolver
	isRef     func(string) bool
	lookupEnv func(string) (string, bool)
}

// New cria o Injector. isRef decide quais valores vão para o resolver.
func New(resolver Resolver, isRef func(string) bool) *Injector {
	return &Injector{resolver: resolver, isRef: isRef, lookupEnv: os.LookupEnv}
}

// Inject altera target (ponteiro para struct) no lugar.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem(), "")
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value, path string) error {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for k := 0; k < t.NumField(); k++ {
			value := v.Field(k)
			if !value.CanSet() {
				continue
			}
			if err := i.injectRecursive(ctx, value, join(path, t.Field(k).Name)); err != nil {
				return err
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		resolved, err := i.resolve(ctx, v.String())
		if err != nil {
			return fmt.Errorf("campo %s: %w", path, err)
		}
		v.SetString(resolved)

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem(), path)
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j), fmt.Sprintf("%s[%d]", path, j)); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String || v.Type().Elem().Kind() != reflect.String {
			return nil
		}
		iter := v.MapRange()
		updates := make(map[string]string)
		for iter.Next() {
			resolved, err := i.resolve(ctx, iter.Value().String())
			if err != nil {
				return fmt.Errorf("campo %s[%s]: %w", path, iter.Key().String(), err)
			}
			updates[iter.Key().String()] = resolved
		}
		for k, val := range updates {
			v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), reflect.ValueOf(val).Convert(v.Type().Elem()))
		}
	}
	return nil
}

func (i *Injector) resolve(ctx context.Context, value string) (string, error) {
	value = i.interpolate(value)
	if i.resolver != nil && i.isRef != nil && i.isRef(value) {
		return i.resolver.Resolve(ctx, value)
	}
	return value, nil
}

// interpolate substitui ${env.X}; variáveis ausentes viram string vazia.
func (i *Injector) interpolate(input string) string {
	if !strings.Contains(input, "${") {
		return input
	}
	return pattern.ReplaceAllStringFunc(input, func(match string) string {
		key := pattern.FindStringSubmatch(match)[1]
		val, _ := i.lookupEnv(key)
		return val
	})
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
