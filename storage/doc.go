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


// Package storage defines the persistence interfaces used by Quarry.
//
// Two repositories back the retrieval engine:
//
//   - ItemRepository: the knowledge-item store, a full-snapshot collection
//     the engine searches per query
//   - BehaviorRepository: the append-only search-behavior event log that
//     preference aggregation reads
//
// The package also provides binary serialization for stored values using the
// MUS format. Serializers are hand-written: the two value types are small and
// stable, so generated code would add a build step without saving much.
//
// Concrete backends live in sub-packages; storage/badger implements both
// repositories on BadgerDB.
package storage
