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
Package operation reconciles the selected components with the destination
directory.

	+----------+     +-----------+     +----------+     +-----------+
	|  remote  | --> | component | --> | Executor | --> |  status   |
	| (fetch)  |     |  (select) |     |  (mode)  |     | (dest fs) |
	+----------+     +-----------+     +----------+     +-----------+

🔄 Flow (Runner.Run):
1. Check the destination for update, remove and uninstall
2. Confirm the destination unless prompts are disabled
3. Fetch the package into a scratch directory, removed on every exit path
4. Index it, narrow to local files for non-copy modes
5. Select components, then dispatch to the Executor for the mode

⚡ Modes:
- copy: selected files plus support files, optional no-overwrite skips
- update: selected files already present locally, always overwritten
- remove: selected files already present locally are deleted
- uninstall: every tracked local file is deleted, then the empty directory

Execution is sequential. A failing file operation aborts the run without
rolling back what already happened on disk. Cancellation is reported as
OutcomeCancelled, never as an error.
*/
package operation
