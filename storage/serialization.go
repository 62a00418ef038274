// Copyright 2025 Poiesic Systems
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
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/ragsweep/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %v", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalVector serializes a vector as a varint length followed by
// fixed-width float32 values.
func MarshalVector(vector []float32) []byte {
	size := varint.Int.Size(len(vector))
	for _, f := range vector {
		size += raw.Float32.Size(f)
	}
	buf := make([]byte, size)
	n := varint.Int.Marshal(len(vector), buf)
	for _, f := range vector {
		n += raw.Float32.Marshal(f, buf[n:])
	}
	return buf
}

// UnmarshalVector deserializes a vector written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	length, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector length: %v", ErrSerializationFailed, err)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative vector length %d", ErrSerializationFailed, length)
	}
	if len(data)-n < length*4 {
		return nil, fmt.Errorf("%w: vector of %d values in %d bytes", ErrTruncatedData, length, len(data)-n)
	}

	vector := make([]float32, length)
	for i := range vector {
		f, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: vector value %d: %v", ErrSerializationFailed, i, err)
		}
		vector[i] = f
		n += m
	}
	return vector, nil
}
