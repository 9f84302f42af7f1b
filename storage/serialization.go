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


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/quarry-app/quarry/core"
)

var stringSliceMUS = ord.NewSliceSer[string](ord.String)

// Timestamps are stored as microseconds since the Unix epoch; the zero
// time.Time maps to 0 so "never accessed" survives a round trip.
func marshalTime(t time.Time, bs []byte) int {
	var micros int64
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Marshal(micros, bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || micros == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	var micros int64
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Size(micros)
}

// knowledgeItemMUS is a hand-written MUS serializer for core.KnowledgeItem.
type knowledgeItemMUS struct{}

// KnowledgeItemMUS serializes core.KnowledgeItem values.
var KnowledgeItemMUS = knowledgeItemMUS{}

func (knowledgeItemMUS) Marshal(v core.KnowledgeItem, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.Id), bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += stringSliceMUS.Marshal(v.KeyPoints, bs[n:])
	n += stringSliceMUS.Marshal(v.Tags, bs[n:])
	n += ord.String.Marshal(v.SourceType, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += varint.Int.Marshal(v.Importance, bs[n:])
	n += varint.Int.Marshal(v.AccessCount, bs[n:])
	n += marshalTime(v.LastAccessed, bs[n:])
	n += marshalTime(v.CreatedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (knowledgeItemMUS) Unmarshal(bs []byte) (v core.KnowledgeItem, n int, err error) {
	var (
		n1 int
		s  string
	)
	s, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(s)
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KeyPoints, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Importance, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AccessCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastAccessed, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (knowledgeItemMUS) Size(v core.KnowledgeItem) (size int) {
	size = ord.String.Size(string(v.Id))
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.Summary)
	size += stringSliceMUS.Size(v.KeyPoints)
	size += stringSliceMUS.Size(v.Tags)
	size += ord.String.Size(v.SourceType)
	size += ord.String.Size(v.Category)
	size += varint.Int.Size(v.Importance)
	size += varint.Int.Size(v.AccessCount)
	size += sizeTime(v.LastAccessed)
	size += sizeTime(v.CreatedAt)
	size += sizeTime(v.UpdatedAt)
	return
}

// behaviorEventMUS is a hand-written MUS serializer for core.BehaviorEvent.
type behaviorEventMUS struct{}

// BehaviorEventMUS serializes core.BehaviorEvent values.
var BehaviorEventMUS = behaviorEventMUS{}

func (behaviorEventMUS) Marshal(v core.BehaviorEvent, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.Id), bs)
	n += ord.String.Marshal(v.Query, bs[n:])
	n += ord.String.Marshal(string(v.ItemId), bs[n:])
	n += ord.String.Marshal(v.UserId, bs[n:])
	n += stringSliceMUS.Marshal(v.Tags, bs[n:])
	n += marshalTime(v.Timestamp, bs[n:])
	return
}

func (behaviorEventMUS) Unmarshal(bs []byte) (v core.BehaviorEvent, n int, err error) {
	var (
		n1 int
		s  string
	)
	s, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(s)
	v.Query, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	s, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ItemId = core.ID(s)
	v.UserId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (behaviorEventMUS) Size(v core.BehaviorEvent) (size int) {
	size = ord.String.Size(string(v.Id))
	size += ord.String.Size(v.Query)
	size += ord.String.Size(string(v.ItemId))
	size += ord.String.Size(v.UserId)
	size += stringSliceMUS.Size(v.Tags)
	size += sizeTime(v.Timestamp)
	return
}

// MarshalKnowledgeItem serializes a KnowledgeItem to bytes.
func MarshalKnowledgeItem(item *core.KnowledgeItem) []byte {
	buf := make([]byte, KnowledgeItemMUS.Size(*item))
	KnowledgeItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalKnowledgeItem deserializes a KnowledgeItem from bytes.
func UnmarshalKnowledgeItem(data []byte) (*core.KnowledgeItem, error) {
	item, _, err := KnowledgeItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalBehaviorEvent serializes a BehaviorEvent to bytes.
func MarshalBehaviorEvent(event *core.BehaviorEvent) []byte {
	buf := make([]byte, BehaviorEventMUS.Size(*event))
	BehaviorEventMUS.Marshal(*event, buf)
	return buf
}

// UnmarshalBehaviorEvent deserializes a BehaviorEvent from bytes.
func UnmarshalBehaviorEvent(data []byte) (*core.BehaviorEvent, error) {
	event, _, err := BehaviorEventMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
