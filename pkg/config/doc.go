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

/*
Package config builds the immutable run configuration from an optional
project config file and command line flags.

	            +-------------+
	            |   Config    |
	            |  (per run)  |
	            +------+------+
	                   |
	   +---------------+---------------+
	   |               |               |
	+--+---+       +---+---+      +----+----+
	| YAML |       |  HCL  |      |  JSON   |
	+------+       +-------+      +---------+

🔄 Flow:
1. FindProjectRoot walks up to the nearest package.json
2. LoadOptional reads -c or the first of DefaultFiles in the root
3. Build layers defaults, then the file, then flags, and validates

HCL files can read the environment through the env object:

	dir = "${env.SEEDS_DIR}/ui"

In package.json the config lives under the "copyseeds" key.
*/
package config
