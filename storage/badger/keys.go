package badger

import (
	"encoding/binary"

	"github.com/poiesic/ragsweep/core"
)

const (
	vectorRecordPrefix = "vecrec:"
)

// makeVectorKey generates a key for a cached vector by content ID.
// Format: prefix + 8 byte big endian ID
func makeVectorKey(id core.ID) []byte {
	buf := make([]byte, len(vectorRecordPrefix)+8)
	offset := copy(buf, vectorRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// parseVectorKey extracts the content ID from a vector key.
func parseVectorKey(key []byte) (core.ID, bool) {
	if len(key) != len(vectorRecordPrefix)+8 || string(key[:len(vectorRecordPrefix)]) != vectorRecordPrefix {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(vectorRecordPrefix):])), true
}
