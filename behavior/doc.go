// Copyright 2025 Quarry Authors
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


// Package behavior records search interactions and derives user preferences
// from them.
//
// Recording is best-effort telemetry: failures are logged and swallowed so
// that a broken event log never breaks the search path. Preference
// aggregation reads recent events, tallies the tags attached to them, and
// produces a lightweight profile whose favorite tags feed the personalized
// ranking.
package behavior
