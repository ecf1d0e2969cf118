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
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// PackageJSONKey is the package.json key holding the config.
const PackageJSONKey = "copyseeds"

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".json")
}

// 📝 Parse parses the config from JSON bytes. For package.json only the
// "copyseeds" key is read and the rest of the manifest is ignored.
func (p *JSONParser) Parse(ctx context.Context, filename string, data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	if filename == "package.json" {
		var manifest map[string]json.RawMessage
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, errors.Errorf("parsing package.json: %w", err)
		}
		raw, ok := manifest[PackageJSONKey]
		if !ok {
			return &cfg, nil
		}
		data = raw
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	return &cfg, nil
}
