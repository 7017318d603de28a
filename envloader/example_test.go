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
package envloader_test

import (
	"fmt"
	"time"

	"github.com/raywall/fast-valence-client/envloader"
)

func ExampleLoadFrom() {
	type Config struct {
		Host    string        `env:"VALENCE_HOST,required"`
		Port    int           `env:"VALENCE_PORT" envDefault:"443"`
		Timeout time.Duration `env:"VALENCE_TIMEOUT" envDefault:"30s"`
		Tags    []string      `env:"DD_TAGS"`
	}

	env := map[string]string{
		"VALENCE_HOST": "devcop.brightspace.com",
		"DD_TAGS":      "env:dev,team:lms",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	var config Config
	if err := envloader.LoadFrom(&config, lookup); err != nil {
		panic(err)
	}

	fmt.Printf("Host: %s\n", config.Host)
	fmt.Printf("Port: %d\n", config.Port)
	fmt.Printf("Timeout: %s\n", config.Timeout)
	fmt.Printf("Tags: %v\n", config.Tags)

	// Output:
	// Host: devcop.brightspace.com
	// Port: 443
	// Timeout: 30s
	// Tags: [env:dev team:lms]
}

func ExampleLoadFrom_required() {
	type Config struct {
		AppID string `env:"VALENCE_APP_ID,required"`
	}

	var config Config
	err := envloader.LoadFrom(&config, func(string) (string, bool) { return "", false })
	fmt.Println(err != nil)

	// Output:
	// true
}
