// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, RXGRID_SERVER_BASE_URL for server.base_url
const EnvPrefix = "RXGRID"

// 🌱 ApplyEnv overrides settings from RXGRID_* environment variables
func (cfg *Config) ApplyEnv() {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// current values become viper defaults so an unset variable keeps them
	v.SetDefault("server.base_url", cfg.Server.BaseURL)
	v.SetDefault("session.path", cfg.Session.Path)
	v.SetDefault("transform.replacement", cfg.Transform.Replacement)
	v.SetDefault("transform.normalize_phone", cfg.Transform.NormalizePhone)
	v.SetDefault("transform.normalize_date", cfg.Transform.NormalizeDate)
	v.SetDefault("display.max_rows", cfg.Display.MaxRows)

	cfg.Server.BaseURL = v.GetString("server.base_url")
	cfg.Session.Path = v.GetString("session.path")
	cfg.Transform.Replacement = v.GetString("transform.replacement")
	cfg.Transform.NormalizePhone = v.GetBool("transform.normalize_phone")
	cfg.Transform.NormalizeDate = v.GetBool("transform.normalize_date")
	cfg.Display.MaxRows = v.GetInt("display.max_rows")
}
