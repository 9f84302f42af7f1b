package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/quarry-app/quarry/core"
)

// Key prefixes for different data types
const (
	knowledgeItemPrefix = "knowitem"
	behaviorEventPrefix = "behevt"
)

// makeKnowledgeItemKey generates a key for a knowledge item by ID.
func makeKnowledgeItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", knowledgeItemPrefix, id))
}

// makeBehaviorEventKey generates a composite key for a behavior event.
// Format: prefix:timestamp:id, with the timestamp in BigEndian order so
// lexicographic key order is chronological order.
func makeBehaviorEventKey(timestamp time.Time, id core.ID) []byte {
	prefix := behaviorEventPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8+len(id))
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], []byte(id))
	return buf
}

// makePartialBehaviorEventKey generates a partial key for time range scans.
// Format: prefix:timestamp
func makePartialBehaviorEventKey(timestamp time.Time) []byte {
	prefix := behaviorEventPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
