package gelf

import (
	"errors"

	"github.com/google/uuid"
)

const (
	chunkHeaderLen = 12
	maxChunks      = 128

	// DefaultChunkSize fits a datagram in a typical WAN MTU.
	DefaultChunkSize = 1420
)

var chunkMagic = [2]byte{0x1e, 0x0f}

// ErrTooManyChunks is returned when a payload needs more than 128 chunks.
var ErrTooManyChunks = errors.New("gelf: payload exceeds 128 chunks")

// MessageID is the 8-byte id shared by every chunk of one payload.
type MessageID [8]byte

// NewMessageID takes the leading bytes of a random UUID.
func NewMessageID() MessageID {
	var id MessageID
	u := uuid.New()
	copy(id[:], u[:])
	return id
}

// Chunk splits payload into chunked-GELF datagrams of at most size bytes,
// headers included. A payload that fits in one datagram is returned as is.
// size <= chunkHeaderLen selects DefaultChunkSize.
func Chunk(payload []byte, size int) ([][]byte, error) {
	return chunkWithID(payload, size, NewMessageID())
}

func chunkWithID(payload []byte, size int, id MessageID) ([][]byte, error) {
	if size <= chunkHeaderLen {
		size = DefaultChunkSize
	}
	if len(payload) <= size {
		return [][]byte{payload}, nil
	}
	body := size - chunkHeaderLen
	n := (len(payload) + body - 1) / body
	if n > maxChunks {
		return nil, ErrTooManyChunks
	}
	out := make([][]byte, 0, n)
	for seq := 0; seq < n; seq++ {
		lo := seq * body
		hi := min(lo+body, len(payload))
		c := make([]byte, 0, chunkHeaderLen+hi-lo)
		c = append(c, chunkMagic[:]...)
		c = append(c, id[:]...)
		c = append(c, byte(seq), byte(n))
		c = append(c, payload[lo:hi]...)
		out = append(out, c)
	}
	return out, nil
}
