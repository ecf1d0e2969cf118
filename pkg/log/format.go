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

package log

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	lineIndent = 2  // spaces to indent component entries
	nameWidth  = 20 // width for the component name
	fileWidth  = 28 // width for the file name
)

// 🎯 FormatComponentLine formats one component for the list command.
func FormatComponentLine(name, file string, installed bool) string {
	prefix := color.HiBlackString("-")
	state := color.HiBlackString("available")
	if installed {
		prefix = color.GreenString("✓")
		state = color.GreenString("installed")
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", lineIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, name),
		color.CyanString(fmt.Sprintf("%-*s", fileWidth, file)),
		state,
	)
}
